package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/career-compass/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildInitialQuestionPrompt creates the prompt for the first interview question
func (pb *PromptBuilder) BuildInitialQuestionPrompt(interests string) string {
	return fmt.Sprintf(`You are an expert career counselor starting a dynamic interview.
Based on the student's initial interests, generate the first question.

Guidelines:
1. Be warm and welcoming.
2. Use short, simple English (max 20 words).
3. Ask only one clear question, with a small example so the student understands what you mean.
4. Focus on understanding their motivation behind the stated interest.
5. Avoid difficult or technical words.

Return your response in the following JSON format:
{
  "question": "The first question to ask",
  "is_final_question": false
}

Student's initial interests: %s`, interests)
}

// BuildNextQuestionPrompt creates the prompt for a follow-up interview question
func (pb *PromptBuilder) BuildNextQuestionPrompt(interests string, previousQuestions, previousResponses []string, currentQuestionNumber, totalQuestions int) string {
	var qa strings.Builder
	for i, q := range previousQuestions {
		response := ""
		if i < len(previousResponses) {
			response = previousResponses[i]
		}
		qa.WriteString(fmt.Sprintf("Q%d: %s\nA%d: %s\n\n", i+1, q, i+1, response))
	}

	return fmt.Sprintf(`You are analyzing the skills of a college student based on their interests. Your job is to understand what skills they might have related to their interests - not to give career advice.

How to ask questions:
1. Use simple English that college students understand
2. Ask questions that connect to the interests they mentioned
3. Build on their previous answers to find out more about their abilities
4. Never repeat a question that was already asked
5. Ask about real experiences they might have had related to their interests (projects, assignments, group work)
6. Find out how they learned about their interests and what they did
7. Questions should be 15-20 words and easy to understand
8. Be friendly, like talking to a junior
9. For the last question, ask something that wraps up their skills

Based on their interests, explore:
- What they have actually done related to their interests
- How they learned about this interest (online, books, friends, family)
- What they are good at when doing things related to their interests
- Any problems they solved or challenges they faced in this area
- If they helped others or worked with classmates on anything related
- What tools, apps, or methods they used for their interests

Return your response in the following JSON format:
{
  "question": "The next question to ask",
  "is_final_question": true/false
}

Student's initial interests: %s

Previous Q&A:
%s
Current question number: %d of %d

Generate the next question:`, interests, qa.String(), currentQuestionNumber, totalQuestions)
}

// BuildQuestionBatchPrompt creates the prompt for a fixed batch of interview questions
func (pb *PromptBuilder) BuildQuestionBatchPrompt(interests string) string {
	return fmt.Sprintf(`You are an expert career counselor. Based on a student's interests,
generate 5-7 thoughtful, open-ended questions to better understand their:
1. Learning style and preferences
2. Motivation and goals
3. Problem-solving approach
4. Communication style
5. Technical aptitude

Questions should be conversational and help reveal both technical and soft skills.
Return only the questions, one per line, without numbering.

Student interests: %s`, interests)
}

// BuildSkillInferencePrompt creates the prompt for skill inference from interview responses
func (pb *PromptBuilder) BuildSkillInferencePrompt(interests string, responses []string) string {
	var combined strings.Builder
	for i, response := range responses {
		combined.WriteString(fmt.Sprintf("Response %d: %s\n", i+1, response))
	}

	return fmt.Sprintf(`You are an expert career analyst. Analyze student responses and identify:
1. Technical skills (programming, analysis, design, etc.)
2. Soft skills (leadership, communication, problem-solving, etc.)
3. Learning preferences (visual, hands-on, theoretical, etc.)
4. Career interests and motivations

Return your response in the following JSON format:
{
  "technical_skills": ["skill1", "skill2"],
  "soft_skills": ["skill1", "skill2"],
  "learning_style": "description",
  "career_interests": ["interest1", "interest2"],
  "confidence_level": "high/medium/low"
}

Student's initial interests: %s

Student's interview responses:
%s`, interests, combined.String())
}

// BuildRankingPrompt creates the prompt for selecting and justifying the top careers
func (pb *PromptBuilder) BuildRankingPrompt(profile *models.SkillProfile, candidates []CareerCandidate) string {
	var careerData strings.Builder
	for i, candidate := range candidates {
		careerData.WriteString(fmt.Sprintf(`
Career %d: %s
Description: %s
Required Skills: %s
Vector Score: %.2f
`, i+1, candidate.Title, candidate.Description, strings.Join(candidate.RequiredSkills, ", "), candidate.Score))
	}

	return fmt.Sprintf(`You are an expert career counselor. Based on a student's skill profile and a list of potential careers from a vector database, select the top 5 most suitable careers.

Guidelines:
1. Consider the student's technical skills, soft skills, learning style, and career interests
2. Match careers to the student's profile and preferences
3. Consider the vector similarity scores but don't rely solely on them
4. Provide reasoning for each recommendation
5. Rank careers from most suitable to least suitable

Return your response in the following JSON format:
{
  "recommended_careers": [
    {
      "title": "Career Title",
      "description": "Brief description",
      "match_reason": "Why this career matches the student",
      "confidence_score": 0.95,
      "required_skills": ["skill1", "skill2"],
      "learning_path": "Suggested learning path"
    }
  ]
}

Student Skill Profile:
Technical Skills: %s
Soft Skills: %s
Learning Style: %s
Career Interests: %s
Confidence Level: %s

Available Careers from Vector Database:
%s
Select the top 5 most suitable careers:`,
		strings.Join(profile.TechnicalSkills, ", "),
		strings.Join(profile.SoftSkills, ", "),
		profile.LearningStyle,
		strings.Join(profile.CareerInterests, ", "),
		profile.ConfidenceLevel,
		careerData.String())
}

func parseJSONResponse(response string, target interface{}) error {
	// Try to extract JSON from response (LLM might wrap it in markdown)
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// Determine if we have an object or array
	if startObj != -1 && endObj != -1 && endObj > startObj {
		// We have a JSON object
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		// We have a JSON array
		return text[startArr : endArr+1]
	}

	return text
}
