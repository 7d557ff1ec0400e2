package services

import (
	"fmt"

	"google.golang.org/genai"
)

const defaultJobDescription = "General Software Engineering best practices"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildATSPrompt creates the instruction sent next to the resume file.
// Role and description are embedded verbatim.
func (pb *PromptBuilder) BuildATSPrompt(jobRole, jobDescription string) string {
	if jobDescription == "" {
		jobDescription = defaultJobDescription
	}

	return fmt.Sprintf(`Act as a strict Application Tracking System (ATS).
Analyze the provided resume against the Target Job Role and Job Description below.

Target Job Role: "%s"

Job Description:
"%s"

Perform the following:
1. Identify key skills and requirements specifically for the role of "%s" based on the description.
2. Check if they exist in the resume.
3. Calculate a match score (0-100) based on weighted importance of keywords relative to the Job Role.
4. List matched keywords.
5. List missing keywords that are important for this specific role.
6. Provide a brief summary and actionable suggestions for improvement.

Return the result purely as JSON.`,
		jobRole, jobDescription, jobRole)
}

// AnalysisResponseSchema is the structured-output contract. All five fields
// are required.
func AnalysisResponseSchema() *genai.Schema {
	stringList := func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: description,
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score": {
				Type:        genai.TypeNumber,
				Description: "The ATS score from 0 to 100",
			},
			"matchedKeywords": stringList("List of keywords found in the resume"),
			"missingKeywords": stringList("List of important keywords missing from the resume"),
			"summary": {
				Type:        genai.TypeString,
				Description: "A brief summary of the analysis",
			},
			"suggestions": stringList("List of actionable improvements"),
		},
		Required: append([]string(nil), requiredResultFields...),
	}
}

var requiredResultFields = []string{"score", "matchedKeywords", "missingKeywords", "summary", "suggestions"}
