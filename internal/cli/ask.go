package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"prompt-lab/internal/appstate"
	"prompt-lab/internal/client"
	"prompt-lab/internal/provider"
)

type askOptions struct {
	server     string
	stateFile  string
	provider   string
	model      string
	apiKey     string
	baseURL    string
	templateID string
	noStream   bool
	save       bool
}

func newAskCmd() *cobra.Command {
	opts := askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [PROMPT]",
		Short: "Send a prompt to a running server and print the answer",
		Long: `Send a prompt to a running prompt-lab server. The answer is streamed
unless --no-stream is given, in which case a session record is stored.
Example: prompt-lab ask "请解释什么是RESTful API的核心原则" --provider deepseek`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts, args[0])
		},
	}

	home, _ := os.UserHomeDir()
	cmd.Flags().StringVar(&opts.server, "server", "http://localhost:3000", "Server base URL")
	cmd.Flags().StringVar(&opts.stateFile, "ai-config", filepath.Join(home, ".prompt-lab.json"), "Local AI config file")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Provider (openai, anthropic, deepseek, custom)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model name")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "API key sent with the request")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Provider base URL")
	cmd.Flags().StringVar(&opts.templateID, "template", "", "Template id recorded with the session")
	cmd.Flags().BoolVar(&opts.noStream, "no-stream", false, "Wait for the full answer")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save the resulting AI config to --ai-config")

	return cmd
}

func runAsk(cmd *cobra.Command, opts askOptions, prompt string) error {
	out := cmd.OutOrStdout()

	state, err := appstate.New().LoadAIConfig(opts.stateFile)
	if err != nil {
		return fmt.Errorf("load ai config: %w", err)
	}
	state = state.WithAIConfig(opts.patch())
	if !provider.Known(state.AIConfig.Provider) {
		return fmt.Errorf("unknown provider %q", state.AIConfig.Provider)
	}
	if opts.save {
		if err := state.SaveAIConfig(opts.stateFile); err != nil {
			return fmt.Errorf("save ai config: %w", err)
		}
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s · %s", state.AIConfig.Provider, state.AIConfig.Model)))

	api := client.New(opts.server, nil)
	cfg := state.AIConfig
	req := client.GenerateRequest{Prompt: prompt, Config: &cfg, TemplateID: opts.templateID}
	state = state.WithLoading(true)

	if opts.noStream {
		res, err := api.Generate(cmd.Context(), req)
		state = state.WithLoading(false)
		if err != nil {
			return fail(out, state.WithError(err.Error()))
		}
		fmt.Fprintln(out, res.Response)
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("session %s · %dms", res.SessionID, res.Metadata.ExecutionTime)))
		return nil
	}

	printed := 0
	content, err := api.Stream(cmd.Context(), req, func(content string) {
		// 回调给出累计内容, 只打印新增部分
		fmt.Fprint(out, content[printed:])
		printed = len(content)
	})
	state = state.WithLoading(false)
	if printed > 0 && !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(out)
	}
	if err != nil {
		return fail(out, state.WithError(err.Error()))
	}
	fmt.Fprintln(out, successStyle.Render("✓ done"))
	return nil
}

func fail(w io.Writer, state appstate.State) error {
	fmt.Fprintln(w, errorStyle.Render("✗ "+state.Error))
	return fmt.Errorf("%s", state.Error)
}

func (o askOptions) patch() appstate.AIConfigPatch {
	var p appstate.AIConfigPatch
	if o.provider != "" {
		v := provider.Provider(o.provider)
		p.Provider = &v
		// 保存的 base url 属于之前的服务商
		if o.baseURL == "" {
			empty := ""
			p.BaseURL = &empty
		}
	}
	if o.model != "" {
		p.Model = &o.model
	}
	if o.apiKey != "" {
		p.APIKey = &o.apiKey
	}
	if o.baseURL != "" {
		p.BaseURL = &o.baseURL
	}
	return p
}
