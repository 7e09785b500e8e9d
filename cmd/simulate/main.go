// Offline harness: runs canned student turns through the full scoring
// pipeline with a scripted model, so difficulty tuning can be eyeballed
// without a live LLM.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"

	"github.com/krishngohel/AIDebateTool/internal/dto"
	"github.com/krishngohel/AIDebateTool/internal/pkg/logger"
	"github.com/krishngohel/AIDebateTool/internal/repository/memory"
	"github.com/krishngohel/AIDebateTool/internal/service"
	"github.com/krishngohel/AIDebateTool/pkg/debate"
	"github.com/krishngohel/AIDebateTool/pkg/debate/score"
	"github.com/krishngohel/AIDebateTool/pkg/llm"
	"github.com/krishngohel/AIDebateTool/pkg/moderation"
	"github.com/krishngohel/AIDebateTool/pkg/moderation/strikes"
)

// scriptedProvider replays a fixed model reply per turn.
type scriptedProvider struct {
	replies []string
	next    int
}

func (p *scriptedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	reply := p.replies[p.next%len(p.replies)]
	p.next++
	return reply, nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, nil, opts...)
}

type simTurn struct {
	message string
	reply   string
}

var turns = []simTurn{
	{
		message: "Homework helps students practice what they learned in class and builds discipline over time.",
		reply:   `{"reply": "Practice matters, but hours of repetition crowd out sleep and family time.", "stance": "mixed", "outcome": "mixed", "score": 0.5, "concession": 0.4, "student_strength": 0.7}`,
	},
	{
		message: "no it doesn't",
		reply:   `{"reply": "A claim without a reason isn't an argument. What's your evidence?", "stance": "disagree", "outcome": "ai", "score": 0.8, "concession": 0.0, "student_strength": 0.1}`,
	},
	{
		message: "Studies show students with less homework sleep more and score just as well on exams, so the busywork isn't buying us anything.",
		reply:   `{"reply": "You make a fair point about sleep. Still, those studies rarely control for subject difficulty.", "stance": "agree", "outcome": "student", "score": 0.3, "concession": 0.8, "student_strength": 0.9}`,
	},
	{
		message: "here is some malformed model output",
		reply:   "Sorry, I can't respond in the requested format right now.",
	},
}

func main() {
	if err := debate.ValidateProfiles(); err != nil {
		log.Fatalf("invalid difficulty profiles: %v", err)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	noop := logger.NoopLogger{}

	header := color.New(color.FgCyan, color.Bold)
	student := color.New(color.FgGreen)
	ai := color.New(color.FgYellow)
	meter := color.New(color.FgMagenta)

	for _, difficulty := range []string{"Beginner", "Normal", "Extreme"} {
		header.Printf("\n=== Difficulty: %s ===\n", difficulty)

		replies := make([]string, len(turns))
		for i, t := range turns {
			replies[i] = t.reply
		}
		svc := service.NewDebateService(
			moderation.NewGate(strikes.NewMemoryStore(0), nil, 2, noop),
			&scriptedProvider{replies: replies},
			score.NewShaper(score.NewRand(42)), // fixed seed, comparable runs
			memory.NewSessionRepository(),
			service.NewPublisherService(pubSub),
			debate.DefaultRoundLimit,
			noop,
		)

		for i, t := range turns {
			res, err := svc.Turn(context.Background(), &dto.TurnRequest{
				StudentKey: "sim:" + difficulty,
				Message:    t.message,
				Difficulty: difficulty,
				Round:      i + 1,
				Topic:      "homework",
			})
			if err != nil {
				log.Fatalf("turn failed: %v", err)
			}

			student.Printf("Student: %s\n", t.message)
			ai.Printf("AI:      %s\n", res.Reply)
			meter.Printf("         score=%.3f meter=%d leader=%s label=%q outcome=%s\n",
				res.Score, res.HUD.Meter, res.HUD.Leader, res.HUD.Label, res.Outcome)
			fmt.Println()
		}
	}
}
