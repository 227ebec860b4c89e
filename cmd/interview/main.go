package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"intervo/internal/agents"
	"intervo/internal/bank"
	"intervo/internal/config"
	"intervo/internal/feedback"
	"intervo/internal/graph"
	"intervo/internal/llm"
	"intervo/internal/logstore"
	"intervo/internal/policy"
	"intervo/internal/state"
)

func main() {
	// Load .env file if it exists.
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("interview failed: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("interview", flag.ExitOnError)
	sessionFlag := fs.String("session", "", "Session id (default: a fresh UUID)")
	bankFlag := fs.String("bank", "", "Path to a YAML question bank (default: built-in bank)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}

	sessionID := *sessionFlag
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	questionBank, bankWatcher, err := openBank(*bankFlag, settings)
	if err != nil {
		return err
	}
	if bankWatcher != nil {
		bankWatcher.Start()
		defer bankWatcher.Stop()
	}

	if err := os.MkdirAll(settings.LogDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}
	store, err := logstore.Open(ctx, filepath.Join(settings.LogDir, "sessions.db"))
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Init(ctx, sessionID); err != nil {
		return err
	}

	deps, err := buildDeps(settings, questionBank, store)
	if err != nil {
		return err
	}
	workflow, err := graph.Build(deps)
	if err != nil {
		return err
	}

	sess := state.NewSession(sessionID)
	fmt.Printf("Session %s\n", sessionID)
	fmt.Println("Hello! Please introduce yourself: your name, level, and main skills.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := policy.NormalizeCandidateInput(scanner.Text())
		if input == "" {
			continue
		}

		sess.Input = input
		if err := workflow.Run(ctx, sess); err != nil {
			if logErr := logstore.LogError(settings.LogDir, sessionID, "workflow.run", err); logErr != nil {
				log.Printf("error log write failed: %v", logErr)
			}
			return err
		}

		if sess.FinalFeedback != nil {
			fmt.Println()
			fmt.Print(feedback.Render(sess.FinalFeedback))
			return nil
		}
		fmt.Println(sess.LastAgentMessage)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// openBank loads the YAML bank with hot reload when a path is given,
// otherwise the built-in bank. The returned Source stays live: when a
// watcher backs it, later reloads are visible to every caller.
func openBank(path string, settings *config.Settings) (bank.Source, *bank.Watcher, error) {
	if path == "" {
		path = settings.BankPath
	}
	if path == "" {
		return bank.Default(), nil, nil
	}
	w, err := bank.NewWatcher(path)
	if err != nil {
		return nil, nil, err
	}
	return w, w, nil
}

func buildDeps(settings *config.Settings, b bank.Source, store *logstore.Store) (graph.Deps, error) {
	clients := make(map[string]llm.Client)
	for _, role := range []string{
		config.RoleInterviewer, config.RoleObserver, config.RoleFactChecker,
		config.RoleHiringManager, config.RoleStopIntent, config.RoleProfileExtractor,
	} {
		client, err := llm.NewClientForRole(settings, role)
		if err != nil {
			return graph.Deps{}, fmt.Errorf("failed to build %s client: %w", role, err)
		}
		clients[role] = client
	}
	return graph.Deps{
		Bank:             b,
		Store:            store,
		Observer:         agents.NewObserver(clients[config.RoleObserver], settings),
		Interviewer:      agents.NewInterviewer(clients[config.RoleInterviewer], settings, b),
		FactChecker:      agents.NewFactChecker(clients[config.RoleFactChecker], settings),
		HiringManager:    agents.NewHiringManager(clients[config.RoleHiringManager], settings),
		StopIntent:       agents.NewStopIntent(clients[config.RoleStopIntent], settings),
		ProfileExtractor: agents.NewProfileExtractor(clients[config.RoleProfileExtractor], settings),
	}, nil
}
