package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// msgNoRemote is printed by 'remote url' when origin is not configured.
const msgNoRemote = "No remote configured"

// remoteURLResult is the JSON shape of 'remote url'.
type remoteURLResult struct {
	RemoteURL *string `json:"remoteUrl"`
}

// AddRemoteCommand adds the remote command group to the root command.
func AddRemoteCommand(parent *cobra.Command, env *commandEnv) {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage the origin remote",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <url>",
		Short: "Connect the notes folder to a remote repository",
		Long: `Add the URL as the origin remote. Only https://, http:// and git@
addresses are accepted.

Examples:
  notesync remote add https://github.com/me/notes.git
  notesync remote add git@github.com:me/notes.git`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoteAdd(cmd.Context(), env, cmd.OutOrStdout(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "url",
		Short: "Print the origin remote URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRemoteURL(cmd.Context(), env, cmd.OutOrStdout())
		},
	})

	parent.AddCommand(cmd)
}

func runRemoteAdd(ctx context.Context, env *commandEnv, w io.Writer, url string) error {
	path, err := env.repoPath()
	if err != nil {
		return err
	}

	outcome := env.syncOps().AddRemote(ctx, path, url)
	return env.reportOutcome(env.output(w), outcome)
}

func runRemoteURL(ctx context.Context, env *commandEnv, w io.Writer) error {
	path, err := env.repoPath()
	if err != nil {
		return err
	}

	out := env.output(w)
	url, ok := env.aggregator().RemoteURL(ctx, path)

	if env.jsonOutput() {
		res := remoteURLResult{}
		if ok {
			res.RemoteURL = &url
		}
		return out.JSON(res)
	}

	if !ok {
		out.Warning(msgNoRemote)
		return nil
	}
	_, _ = io.WriteString(w, url+"\n")
	return nil
}
