package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/musebot/internal/config"
	"github.com/sandevgo/musebot/internal/core"
	"github.com/sandevgo/musebot/internal/service/chats"
	"github.com/sandevgo/musebot/internal/service/memory"
	"github.com/sandevgo/musebot/internal/service/orchestrator"
	"github.com/sandevgo/musebot/internal/service/ui"
	"github.com/sandevgo/musebot/pkg/conv"
	"github.com/sandevgo/musebot/pkg/log"
)

// ReadLine is the interactive chat shell. Turn context flags are
// per-session toggles; the URL set with /url applies to the next turn
// only.
type ReadLine struct {
	cfg   *config.AppConfig
	orch  *orchestrator.Orchestrator
	chats *chats.Controller
	mem   *memory.Central
	rl    *readline.Instance

	flags      core.TurnFlags
	pendingURL string
}

func NewReadLine(cfg *config.AppConfig, orch *orchestrator.Orchestrator, chatCtl *chats.Controller, mem *memory.Central) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:   cfg,
		orch:  orch,
		chats: chatCtl,
		mem:   mem,
		rl:    rl,
		flags: core.TurnFlags{UseCurrentMemory: true, UseCentralMemory: true},
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat shell started, type /help for commands")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			r.handleCommand(ctx, line)
			continue
		}

		r.handleTurn(ctx, line)
	}
}

func (r *ReadLine) Shutdown(_ context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func (r *ReadLine) handleTurn(ctx context.Context, message string) {
	out := r.rl.Stdout()

	chatID, err := r.chats.EnsureActive(ctx, r.cfg.SessionID)
	if err != nil {
		fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		return
	}

	flags := r.flags
	flags.UseURLContext = r.pendingURL != ""

	response, err := r.orch.HandleTurn(ctx, orchestrator.TurnRequest{
		SessionID: r.cfg.SessionID,
		ChatID:    chatID,
		Message:   message,
		URL:       r.pendingURL,
		Flags:     flags,
	})
	r.pendingURL = ""

	switch {
	case err == nil:
	case core.IsValidation(err):
		fmt.Fprintln(out, ui.WarnStyle.Render(err.Error()))
		return
	default:
		if warn, ok := core.AsStoreWarning(err); ok {
			fmt.Fprintln(out, ui.WarnStyle.Render(fmt.Sprintf("Warning: %v", warn)))
			break
		}
		log.FromCtx(ctx).Error().Err(err).Msg("turn failed")
		fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		return
	}

	fmt.Fprintln(out, ui.AssistantStyle.Render(conv.MarkdownToText([]byte(response))))

	if flags.UseCurrentMemory {
		if err := r.chats.AutoTitle(ctx, chatID, message); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("auto-title failed")
		}
	}
}

func (r *ReadLine) handleCommand(ctx context.Context, line string) {
	out := r.rl.Stdout()
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		r.printHelp()

	case "/new":
		chat, err := r.chats.Create(ctx, r.cfg.SessionID)
		if err != nil {
			fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		fmt.Fprintln(out, ui.MutedStyle.Render("started chat "+chat.ID))

	case "/chats":
		summaries := r.chats.List(ctx, r.cfg.SessionID)
		if len(summaries) == 0 {
			fmt.Fprintln(out, ui.MutedStyle.Render("no chats yet"))
			return
		}
		active, _ := r.chats.Active(r.cfg.SessionID)
		for _, s := range summaries {
			marker := "  "
			if s.ID == active {
				marker = "* "
			}
			fmt.Fprintf(out, "%s%s  %s  (%d exchanges)\n", marker, s.ID, s.Title, s.ExchangeCount)
		}

	case "/switch":
		if arg == "" {
			fmt.Fprintln(out, ui.WarnStyle.Render("usage: /switch <chat-id>"))
			return
		}
		r.chats.SetActive(r.cfg.SessionID, arg)
		fmt.Fprintln(out, ui.MutedStyle.Render("switched to "+arg))

	case "/rename":
		chatID, ok := r.chats.Active(r.cfg.SessionID)
		if !ok || arg == "" {
			fmt.Fprintln(out, ui.WarnStyle.Render("usage: /rename <title> (with an active chat)"))
			return
		}
		if err := r.chats.Rename(ctx, chatID, arg); err != nil {
			fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}

	case "/delete":
		chatID := arg
		if chatID == "" {
			active, ok := r.chats.Active(r.cfg.SessionID)
			if !ok {
				fmt.Fprintln(out, ui.WarnStyle.Render("usage: /delete <chat-id> (or have an active chat)"))
				return
			}
			chatID = active
		}
		if err := r.chats.Delete(ctx, chatID); err != nil {
			fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		fmt.Fprintln(out, ui.MutedStyle.Render("deleted "+chatID))

	case "/clear-central":
		if err := r.mem.Clear(ctx, r.cfg.SessionID); err != nil {
			fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		fmt.Fprintln(out, ui.MutedStyle.Render("central memory cleared"))

	case "/memory":
		r.flags.UseCurrentMemory = r.toggle(arg, r.flags.UseCurrentMemory)
		fmt.Fprintln(out, ui.MutedStyle.Render("chat memory "+onOff(r.flags.UseCurrentMemory)))

	case "/global":
		r.flags.UseCentralMemory = r.toggle(arg, r.flags.UseCentralMemory)
		fmt.Fprintln(out, ui.MutedStyle.Render("central memory "+onOff(r.flags.UseCentralMemory)))

	case "/url":
		if arg == "" {
			fmt.Fprintln(out, ui.WarnStyle.Render("usage: /url <url>"))
			return
		}
		r.pendingURL = arg
		fmt.Fprintln(out, ui.MutedStyle.Render("url context set for the next message"))

	default:
		fmt.Fprintln(out, ui.WarnStyle.Render("unknown command, type /help"))
	}
}

func (r *ReadLine) toggle(arg string, current bool) bool {
	switch strings.ToLower(arg) {
	case "on":
		return true
	case "off":
		return false
	default:
		return !current
	}
}

func (r *ReadLine) printHelp() {
	out := r.rl.Stdout()
	fmt.Fprintln(out, ui.TitleStyle.Render("Commands"))
	for _, row := range [][2]string{
		{"/new", "start a new chat"},
		{"/chats", "list chats (* marks the active one)"},
		{"/switch <id>", "make a chat active"},
		{"/rename <title>", "rename the active chat"},
		{"/delete [id]", "delete a chat (defaults to the active one)"},
		{"/clear-central", "wipe central memory for this session"},
		{"/memory on|off", "toggle current-chat memory"},
		{"/global on|off", "toggle central memory"},
		{"/url <url>", "attach a web page to the next message"},
		{"exit", "quit"},
	} {
		fmt.Fprintf(out, "  %s  %s\n", ui.UsageStyle.Render(fmt.Sprintf("%-16s", row[0])), ui.DescStyle.Render(row[1]))
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
