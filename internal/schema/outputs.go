// Package schema defines the structured outputs each interview role must
// produce. Every type carries the JSON-schema document the structured-call
// layer validates raw model text against, plus cross-field rules a schema
// document cannot express.
package schema

import "fmt"

// RobustnessFlags is the evaluator's robustness block. The control layer
// trusts these flags as the single source of truth for routing.
type RobustnessFlags struct {
	OffTopic           bool `json:"off_topic"`
	RoleReversal       bool `json:"role_reversal"`
	HallucinationClaim bool `json:"hallucination_claim"`
	Evasive            bool `json:"evasive"`
}

// AnswerQuality is the observer's judgement of one candidate answer.
type AnswerQuality struct {
	Correctness string `json:"correctness"`
	Confidence  string `json:"confidence"`
}

// DetectedClaim is a factual claim the observer flagged for checking.
type DetectedClaim struct {
	Claim string `json:"claim"`
}

// SkillUpdate is one observer-proposed change to the skill matrix.
type SkillUpdate struct {
	Topic    string `json:"topic"`
	Status   string `json:"status"`
	Evidence string `json:"evidence"`
}

// NextAction is the observer's suggestion for the interviewer's next move.
type NextAction struct {
	Type                     string `json:"type"`
	Topic                    string `json:"topic"`
	InstructionToInterviewer string `json:"instruction_to_interviewer"`
}

// ObserverOutput is the full structured evaluation of one candidate turn.
type ObserverOutput struct {
	Summary         string          `json:"summary"`
	AnswerQuality   AnswerQuality   `json:"answer_quality"`
	DetectedClaims  []DetectedClaim `json:"detected_claims"`
	SkillUpdates    []SkillUpdate   `json:"skill_updates"`
	DifficultyDelta int             `json:"difficulty_delta"`
	NextAction      NextAction      `json:"next_action"`
	Robustness      RobustnessFlags `json:"robustness"`
}

const observerSchemaJSON = `{
	"type": "object",
	"properties": {
		"summary": {"type": "string"},
		"answer_quality": {
			"type": "object",
			"properties": {
				"correctness": {"type": "string"},
				"confidence": {"type": "string"}
			},
			"required": ["correctness", "confidence"]
		},
		"detected_claims": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {"claim": {"type": "string"}},
				"required": ["claim"]
			}
		},
		"skill_updates": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"topic": {"type": "string"},
					"status": {"type": "string", "enum": ["gap", "uncertain", "confirmed", "unknown"]},
					"evidence": {"type": "string"}
				},
				"required": ["topic", "status", "evidence"]
			}
		},
		"difficulty_delta": {"type": "integer", "minimum": -2, "maximum": 2},
		"next_action": {
			"type": "object",
			"properties": {
				"type": {"type": "string"},
				"topic": {"type": "string"},
				"instruction_to_interviewer": {"type": "string", "minLength": 1}
			},
			"required": ["type", "topic", "instruction_to_interviewer"]
		},
		"robustness": {
			"type": "object",
			"properties": {
				"off_topic": {"type": "boolean"},
				"role_reversal": {"type": "boolean"},
				"hallucination_claim": {"type": "boolean"},
				"evasive": {"type": "boolean"}
			},
			"required": ["off_topic", "role_reversal", "hallucination_claim", "evasive"]
		}
	},
	"required": ["summary", "answer_quality", "detected_claims", "skill_updates", "difficulty_delta", "next_action", "robustness"]
}`

func (o *ObserverOutput) JSONSchema() string { return observerSchemaJSON }

func (o *ObserverOutput) Validate() error { return nil }

// InterviewerMetadata describes the question the interviewer just produced.
type InterviewerMetadata struct {
	Topic      string `json:"topic"`
	Intent     string `json:"intent"`
	Difficulty int    `json:"difficulty"`
}

// InterviewerOutput is the candidate-facing message plus its metadata.
type InterviewerOutput struct {
	AgentVisibleMessage string              `json:"agent_visible_message"`
	Metadata            InterviewerMetadata `json:"metadata"`
}

const interviewerSchemaJSON = `{
	"type": "object",
	"properties": {
		"agent_visible_message": {"type": "string", "minLength": 10, "maxLength": 1200},
		"metadata": {
			"type": "object",
			"properties": {
				"topic": {"type": "string"},
				"intent": {"type": "string"},
				"difficulty": {"type": "integer", "minimum": 1, "maximum": 5}
			},
			"required": ["topic", "intent", "difficulty"]
		}
	},
	"required": ["agent_visible_message", "metadata"]
}`

func (o *InterviewerOutput) JSONSchema() string { return interviewerSchemaJSON }

func (o *InterviewerOutput) Validate() error { return nil }

// FactCheckVerdict is the fact-checker's judgement of one claim.
type FactCheckVerdict struct {
	Label        string   `json:"label"`
	Confidence   int      `json:"confidence"`
	Correction   string   `json:"correction"`
	Explanation  string   `json:"explanation"`
	SafeResponse string   `json:"safe_response"`
	Sources      []string `json:"sources"`
}

const factCheckSchemaJSON = `{
	"type": "object",
	"properties": {
		"label": {"type": "string", "enum": ["true", "false", "uncertain", "misleading"]},
		"confidence": {"type": "integer", "minimum": 0, "maximum": 100},
		"correction": {"type": "string"},
		"explanation": {"type": "string"},
		"safe_response": {"type": "string", "minLength": 1},
		"sources": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["label", "confidence", "correction", "explanation", "safe_response"]
}`

func (v *FactCheckVerdict) JSONSchema() string { return factCheckSchemaJSON }

func (v *FactCheckVerdict) Validate() error { return nil }

// Decision is the hiring manager's overall verdict.
type Decision struct {
	Grade                string `json:"Grade"`
	HiringRecommendation string `json:"HiringRecommendation"`
	ConfidenceScore      int    `json:"ConfidenceScore"`
}

// KnowledgeGap is one demonstrated gap with the expected correct answer.
type KnowledgeGap struct {
	Topic         string `json:"topic"`
	WhatWentWrong string `json:"what_went_wrong"`
	CorrectAnswer string `json:"correct_answer"`
	Evidence      string `json:"evidence"`
}

// HardSkills aggregates confirmed skills and knowledge gaps.
type HardSkills struct {
	ConfirmedSkills []string       `json:"ConfirmedSkills"`
	KnowledgeGaps   []KnowledgeGap `json:"KnowledgeGaps"`
}

// SoftSkills rates communication qualities observed during the session.
type SoftSkills struct {
	Clarity    string `json:"Clarity"`
	Honesty    string `json:"Honesty"`
	Engagement string `json:"Engagement"`
	Notes      string `json:"Notes"`
}

// RoadmapStep is one recommended follow-up for the candidate.
type RoadmapStep struct {
	Topic     string   `json:"topic"`
	Why       string   `json:"why"`
	Resources []string `json:"resources"`
}

// Roadmap lists recommended next steps.
type Roadmap struct {
	NextSteps []RoadmapStep `json:"NextSteps"`
}

// FinalFeedback is the hiring manager's structured session summary.
type FinalFeedback struct {
	Decision   Decision   `json:"Decision"`
	HardSkills HardSkills `json:"HardSkills"`
	SoftSkills SoftSkills `json:"SoftSkills"`
	Roadmap    Roadmap    `json:"Roadmap"`
	Summary    string     `json:"Summary"`
}

const finalFeedbackSchemaJSON = `{
	"type": "object",
	"properties": {
		"Decision": {
			"type": "object",
			"properties": {
				"Grade": {"type": "string", "enum": ["Junior", "Middle", "Senior"]},
				"HiringRecommendation": {"type": "string", "enum": ["Hire", "No Hire", "Strong Hire"]},
				"ConfidenceScore": {"type": "integer", "minimum": 0, "maximum": 100}
			},
			"required": ["Grade", "HiringRecommendation", "ConfidenceScore"]
		},
		"HardSkills": {
			"type": "object",
			"properties": {
				"ConfirmedSkills": {"type": "array", "items": {"type": "string"}},
				"KnowledgeGaps": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"topic": {"type": "string"},
							"what_went_wrong": {"type": "string"},
							"correct_answer": {"type": "string", "minLength": 1},
							"evidence": {"type": "string"}
						},
						"required": ["correct_answer"]
					}
				}
			},
			"required": ["ConfirmedSkills", "KnowledgeGaps"]
		},
		"SoftSkills": {
			"type": "object",
			"properties": {
				"Clarity": {"type": "string", "enum": ["Low", "Medium", "High"]},
				"Honesty": {"type": "string", "enum": ["Low", "Medium", "High"]},
				"Engagement": {"type": "string", "enum": ["Low", "Medium", "High"]},
				"Notes": {"type": "string"}
			},
			"required": ["Clarity", "Honesty", "Engagement", "Notes"]
		},
		"Roadmap": {
			"type": "object",
			"properties": {
				"NextSteps": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"topic": {"type": "string"},
							"why": {"type": "string"},
							"resources": {"type": "array", "items": {"type": "string"}}
						},
						"required": ["topic", "why"]
					}
				}
			},
			"required": ["NextSteps"]
		},
		"Summary": {"type": "string"}
	},
	"required": ["Decision", "HardSkills", "SoftSkills", "Roadmap", "Summary"]
}`

func (f *FinalFeedback) JSONSchema() string { return finalFeedbackSchemaJSON }

// Validate enforces the cross-field rule: demonstrated knowledge gaps must
// come with a non-empty roadmap.
func (f *FinalFeedback) Validate() error {
	if len(f.HardSkills.KnowledgeGaps) > 0 && len(f.Roadmap.NextSteps) == 0 {
		return fmt.Errorf("Roadmap.NextSteps must be non-empty when KnowledgeGaps exist")
	}
	return nil
}

// StopIntentOutput is the stop-intent classifier verdict.
type StopIntentOutput struct {
	Stop       bool   `json:"stop"`
	Confidence int    `json:"confidence"`
	Rationale  string `json:"rationale"`
}

const stopIntentSchemaJSON = `{
	"type": "object",
	"properties": {
		"stop": {"type": "boolean"},
		"confidence": {"type": "integer", "minimum": 0, "maximum": 100},
		"rationale": {"type": "string", "minLength": 1, "maxLength": 200}
	},
	"required": ["stop", "confidence", "rationale"]
}`

func (o *StopIntentOutput) JSONSchema() string { return stopIntentSchemaJSON }

func (o *StopIntentOutput) Validate() error { return nil }

// CandidateProfile is the extracted candidate introduction. It is also the
// profile record carried in session state.
type CandidateProfile struct {
	Name        string             `json:"name"`
	Level       string             `json:"level"`
	Position    string             `json:"position"`
	Skills      []string           `json:"skills"`
	Confidence  map[string]float64 `json:"confidence"`
	Assumptions []string           `json:"assumptions"`
}

const candidateProfileSchemaJSON = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"level": {"type": "string"},
		"position": {"type": "string"},
		"skills": {"type": "array", "items": {"type": "string"}},
		"confidence": {"type": "object"},
		"assumptions": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["name", "level", "position", "skills"]
}`

func (p *CandidateProfile) JSONSchema() string { return candidateProfileSchemaJSON }

func (p *CandidateProfile) Validate() error { return nil }
