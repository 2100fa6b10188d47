// Command soulcli is an interactive demo REPL driving a single soul.Character
// so its emotion/belief/presentation/erosion/trigger state can be
// inspected turn by turn from a terminal.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/keshon/soul-engine/internal/ai"
	"github.com/keshon/soul-engine/internal/config"
	"github.com/keshon/soul-engine/internal/llmeval"
	"github.com/keshon/soul-engine/internal/logging"
	"github.com/keshon/soul-engine/internal/soul"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logging.New("soulcli", "soulcli.log")

	character := soul.NewCharacter(soul.Worrier, soul.Options{
		TimeSource:   sessionClock(),
		HistoryAlpha: cfg.HistoryAlpha,

		EnablePresentation: true,

		EnableBeliefs: true,
		InitialBeliefs: []soul.Belief{
			{Text: "people I trust keep their word", Strength: 0.6, Inertia: 0.5, Tags: []string{"trust"}},
			{Text: "I am safe here", Strength: 0.5, Inertia: 0.4, Tags: []string{"safety"}},
		},
		Evaluator: soul.DefaultEvaluator,

		EnableErosion:    true,
		ErosionHardening: cfg.ErosionHardeningFactor,

		EnableTriggers: true,
	})

	if cfg.AIProvider != "fake" && cfg.AIProvider != "" {
		provider, err := ai.DefaultProvider(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("falling back to fake evaluator")
		} else if provider != nil {
			ev := llmeval.New(provider, cfg.LLMRateLimitPerMinute, log)
			_ = character.SetEvaluatorBackend(ev.Evaluator())
		}
	}

	fmt.Println("soul-engine demo REPL. Commands:")
	fmt.Println("  interact <name> <intensity>   apply a cross-effect interaction")
	fmt.Println("  say <text>                     scan text for triggers, advance a turn")
	fmt.Println("  eval <scene> | <conversation>  run the belief evaluator")
	fmt.Println("  enter <situation> <person...>  enter a masking situation")
	fmt.Println("  leave                          leave the active situation")
	fmt.Println("  state                          print core + perceived emotions")
	fmt.Println("  quit")

	reader := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !reader.Scan() {
			return
		}
		line := strings.TrimSpace(reader.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		cmd := fields[0]
		rest := ""
		if len(fields) > 1 {
			rest = fields[1]
		}

		switch cmd {
		case "quit", "exit":
			return
		case "interact":
			handleInteract(character, rest)
		case "say":
			handleSay(character, rest)
		case "eval":
			handleEval(character, rest)
		case "enter":
			handleEnter(character, rest)
		case "leave":
			if err := character.LeaveSituation(); err != nil {
				fmt.Println("error:", err)
			}
		case "state":
			printState(character)
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func sessionClock() func() float64 {
	start := time.Now()
	return func() float64 { return time.Since(start).Seconds() }
}

func handleInteract(c *soul.Character, rest string) {
	parts := strings.Fields(rest)
	if len(parts) != 2 {
		fmt.Println("usage: interact <name> <intensity>")
		return
	}
	intensity, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		fmt.Println("bad intensity:", err)
		return
	}
	applied, err := c.ApplyInteraction(parts[0], intensity)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("applied:", applied)
}

func handleSay(c *soul.Character, text string) {
	_ = c.AdvanceTurn()
	fired, err := c.ProcessText(text)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, ft := range fired {
		fmt.Printf("topic fired: %s applied=%v\n", ft.Topic, ft.Applied)
	}
}

func handleEval(c *soul.Character, rest string) {
	parts := strings.SplitN(rest, "|", 2)
	scene := strings.TrimSpace(parts[0])
	conversation := ""
	if len(parts) > 1 {
		conversation = strings.TrimSpace(parts[1])
	}
	deltas, impacts, err := c.Evaluate(scene, conversation)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("deltas:", deltas)
	fmt.Println("impacts:", impacts)
	events, err := c.ProcessEvaluation(impacts, deltas)
	if err != nil {
		fmt.Println("erosion error:", err)
		return
	}
	for _, ev := range events {
		fmt.Printf("belief %d shifted %.2f -> %.2f\n", ev.BeliefIndex, ev.OldStrength, ev.NewStrength)
	}
}

func handleEnter(c *soul.Character, rest string) {
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		fmt.Println("usage: enter <situation> [person...]")
		return
	}
	if err := c.EnterSituation(parts[0], parts[1:]); err != nil {
		fmt.Println("error:", err)
	}
}

func printState(c *soul.Character) {
	fmt.Println("core:", c.GetEmotions())
	fmt.Println("perceived:", c.GetPerceived())
	fmt.Printf("masking strain: %.3f\n", c.GetMaskingStrain())
}
