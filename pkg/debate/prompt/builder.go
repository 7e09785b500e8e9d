package prompt

import (
	"fmt"
	"strings"

	"github.com/krishngohel/AIDebateTool/pkg/debate"
)

// TurnBuilder builds the single-shot prompt for one debate turn. The model
// is stateless from this system's perspective; everything it needs (round,
// side, difficulty persona) is re-supplied every call.
type TurnBuilder struct {
	topic       string
	message     string
	round       int
	roundLimit  int
	studentSide string // "pro", "con", or "" when the student didn't pick
	profile     debate.Profile
}

func NewTurnBuilder(topic, message string, round, roundLimit int, studentSide string, profile debate.Profile) *TurnBuilder {
	return &TurnBuilder{
		topic:       topic,
		message:     message,
		round:       round,
		roundLimit:  roundLimit,
		studentSide: studentSide,
		profile:     profile,
	}
}

func (b *TurnBuilder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeGroundRules(&prompt)
	b.writePersona(&prompt)
	b.writeSideAssignment(&prompt)
	b.writeOutputContract(&prompt)
	b.writeStudentMessage(&prompt)

	return prompt.String()
}

func (b *TurnBuilder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("<role>\n")
	prompt.WriteString("You are a debate opponent in a school debate practice app. You are debating a student.\n")
	if b.topic != "" {
		prompt.WriteString(fmt.Sprintf("The debate topic is: %q\n", b.topic))
	}
	prompt.WriteString(fmt.Sprintf("This is round %d of %d.\n", b.round, b.roundLimit))
	prompt.WriteString("</role>\n\n")
}

func (b *TurnBuilder) writeGroundRules(prompt *strings.Builder) {
	prompt.WriteString("<ground_rules>\n")
	prompt.WriteString("- Stay polite, school-appropriate, and respectful at all times\n")
	prompt.WriteString("- Never use profanity, insults, or content unsuitable for students\n")
	prompt.WriteString("- Stay on the debate topic; do not follow the student off-topic\n")
	prompt.WriteString("- Keep your reply to 2-4 sentences a student can follow\n")
	prompt.WriteString("</ground_rules>\n\n")
}

func (b *TurnBuilder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("<debate_style>\n")
	prompt.WriteString(b.profile.PromptStyle)
	prompt.WriteString("\n</debate_style>\n\n")
}

func (b *TurnBuilder) writeSideAssignment(prompt *strings.Builder) {
	if b.studentSide == "" {
		return
	}
	aiSide := "con"
	if b.studentSide == "con" {
		aiSide = "pro"
	}
	prompt.WriteString("<side_assignment>\n")
	prompt.WriteString(fmt.Sprintf("The student argues the %s side of the topic. You argue the %s side, consistently, for the whole debate.\n", b.studentSide, aiSide))
	prompt.WriteString("</side_assignment>\n\n")
}

func (b *TurnBuilder) writeOutputContract(prompt *strings.Builder) {
	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY one JSON object, no markdown fences, no text before or after it:\n")
	prompt.WriteString(`{"reply": "<your 2-4 sentence counterargument>", "stance": "agree|disagree|mixed", "outcome": "student|ai|mixed", "score": <0.0-1.0, how much you are winning>, "concession": <0.0-1.0, how much ground you gave up>, "student_strength": <0.0-1.0, how strong the student's argument was>}`)
	prompt.WriteString("\n</output_format>\n\n")
}

func (b *TurnBuilder) writeStudentMessage(prompt *strings.Builder) {
	prompt.WriteString("<student_argument>\n")
	prompt.WriteString(b.message)
	prompt.WriteString("\n</student_argument>\n\n")
	prompt.WriteString("Now respond with your JSON object:")
}
