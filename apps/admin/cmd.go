package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/core/school"
	"github.com/trezcool/clno/storage"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf  *core.Config
	out   io.Writer
	repos *storage.Repositories // opened on first use
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         cli.conf.AppName + " administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(
		cli.initCmd(),
		cli.addSchoolCmd(),
		cli.setTeacherPasswordCmd(),
		cli.setClassPasswordCmd(),
		cli.migrateCmd(),
	)
	return root
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) < 2 {
		_ = root.Help()
		return errHelp
	}
	root.SetArgs(args[1:])
	return root.ExecuteContext(context.Background())
}

func (cli *commandLine) close() error {
	if cli.repos == nil {
		return nil
	}
	return cli.repos.Close()
}

func (cli *commandLine) schoolService(ctx context.Context) (school.Service, error) {
	if cli.repos == nil {
		repos, err := storage.Open(ctx, cli.conf)
		if err != nil {
			return nil, err
		}
		cli.repos = repos
	}
	return school.NewService(cli.repos.School, cli.conf), nil
}

// promptPassword reads a password without echo; an empty password prints the usage and returns errHelp.
func (cli *commandLine) promptPassword(cmd *cobra.Command) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Enter password:")
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		_ = cmd.Usage()
		return "", errHelp
	}
	return string(pwd), nil
}
