package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/codepane-dev/codepane/internal/assist"
	"github.com/codepane-dev/codepane/internal/assist/completion"
	"github.com/codepane-dev/codepane/internal/assist/config"
	"github.com/codepane-dev/codepane/internal/assist/editor"
	"github.com/codepane-dev/codepane/internal/assist/engine"
	"github.com/codepane-dev/codepane/internal/assist/prompt"
)

var (
	model        string
	templateName string
	pageFile     string
	problem      string
	problemFile  string
	language     string
	interactive  bool
	applyReply   bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the assistant about the page's problem",
	Long: `Talk to the assistant about the coding problem on the page.

Every turn is grounded in the page context: the problem statement, the
programming language, and the code currently in the page's editor. The
assistant answers with an explanation and, when useful, a replacement code
snippet.

If no message is provided as an argument, it reads from stdin. With
--interactive, an interactive session is started instead; each line is one
turn, and the following commands are available:

  :apply        write the most recent code snippet into the page editor
  :model <id>   switch the model for subsequent turns
  :quit         end the session

The instruction template is a TOML file with an "instruction" key holding
the system instruction. It may use the placeholders {{problem_statement}},
{{programming_language}}, and {{user_code}}.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if pageFile == "" {
			pageFile = cfg.PageFile
		}
		if pageFile == "" {
			return fmt.Errorf("no page document: pass --page or set page_file in the config")
		}

		if problemFile != "" {
			data, err := os.ReadFile(problemFile)
			if err != nil {
				return fmt.Errorf("reading problem file: %w", err)
			}
			problem = strings.TrimSpace(string(data))
		}
		if language == "" {
			language = cfg.Language
		}

		if cmd.Flags().Changed("model") {
			cfg.Model = model
		}
		if !assist.SupportedModel(cfg.Model) {
			return fmt.Errorf("unsupported model %q, run 'codepane models' for the available set", cfg.Model)
		}

		instruction := prompt.DefaultInstruction
		if templateName != "" {
			path, err := prompt.Find(templateName, cfg.TemplateDirs)
			if err != nil {
				return fmt.Errorf("finding template: %w", err)
			}
			tpl, err := prompt.Load(path)
			if err != nil {
				return fmt.Errorf("loading template: %w", err)
			}
			instruction = tpl.Instruction
			if verbose {
				fmt.Fprintf(os.Stderr, "Using template: %s\n", path)
			}
		}

		page := assist.PageContext{
			ProblemStatement:    problem,
			ProgrammingLanguage: language,
		}

		key, _ := cfg.GetToken()
		eng := engine.New(
			assist.NewSession(cfg.Model),
			page,
			instruction,
			editor.NewDocument(pageFile),
			engine.CredentialFunc(cfg.GetToken),
			completion.NewOpenAI(key, cfg.BaseURL),
		)

		if verbose {
			fmt.Fprintf(os.Stderr, "Session: %s\n", eng.Session().ShortID())
			fmt.Fprintf(os.Stderr, "Model: %s\n", eng.Session().SelectedModel)
		}

		if interactive {
			return runInteractive(eng)
		}

		// Get message from arguments or stdin
		var message string
		if len(args) > 0 {
			message = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			message = strings.TrimSpace(string(input))
		}

		reply, err := eng.Submit(context.Background(), message)
		if err != nil {
			return turnError(err)
		}
		if reply == nil {
			return nil
		}

		printReply(reply)

		if applyReply && reply.HasCode() {
			if err := eng.ApplyCode(reply.Code); err != nil {
				return turnError(err)
			}
			fmt.Fprintln(os.Stderr, "Applied code to the page editor.")
		}
		return nil
	},
}

// runInteractive runs a multi-turn session, one line per turn.
func runInteractive(eng *engine.Engine) error {
	rl, err := readline.New("> ")
	if err != nil {
		return fmt.Errorf("starting interactive session: %w", err)
	}
	defer rl.Close()

	fmt.Printf("Session %s on %s. :apply writes the last snippet to the editor, :quit ends.\n",
		eng.Session().ShortID(), eng.Session().SelectedModel)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil { // io.EOF
			return nil
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return nil
		case line == ":apply":
			code, ok := eng.Session().LastCode()
			if !ok {
				fmt.Fprintln(os.Stderr, "No code snippet in this session yet.")
				continue
			}
			if err := eng.ApplyCode(code); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", turnError(err))
				continue
			}
			fmt.Println("Applied code to the page editor.")
		case strings.HasPrefix(line, ":model"):
			id := strings.TrimSpace(strings.TrimPrefix(line, ":model"))
			if id == "" {
				fmt.Println("Current model:", eng.Session().SelectedModel)
				continue
			}
			if err := eng.SetModel(id); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				continue
			}
			fmt.Println("Switched to", id)
		default:
			reply, err := eng.Submit(context.Background(), line)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", turnError(err))
				continue
			}
			if reply == nil {
				continue
			}
			printReply(reply)
		}
	}
}

func printReply(reply *assist.Message) {
	fmt.Println(reply.Text)
	if reply.HasCode() {
		fmt.Println()
		fmt.Println("```")
		fmt.Println(reply.Code)
		fmt.Println("```")
	}
}

// turnError maps session error kinds to user-facing messages.
func turnError(err error) error {
	switch {
	case errors.Is(err, assist.ErrMissingCredential):
		return fmt.Errorf("no API key configured: set token in the config file or export OPENAI_API_KEY")
	case errors.Is(err, assist.ErrEditorNotFound):
		return fmt.Errorf("the page has no editable region (role=%q element not found)", "textbox")
	default:
		return err
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&model, "model", "m", "", "model to use (overrides config)")
	chatCmd.Flags().StringVarP(&templateName, "template", "t", "", "instruction template name")
	chatCmd.Flags().StringVar(&pageFile, "page", "", "host page HTML document (overrides config)")
	chatCmd.Flags().StringVar(&problem, "problem", "", "problem statement text")
	chatCmd.Flags().StringVar(&problemFile, "problem-file", "", "file holding the problem statement")
	chatCmd.Flags().StringVarP(&language, "language", "l", "", "programming language of the editor (overrides config)")
	chatCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start an interactive session")
	chatCmd.Flags().BoolVar(&applyReply, "apply", false, "write a returned code snippet into the page editor")
}
