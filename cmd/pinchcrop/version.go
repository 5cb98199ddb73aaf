package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

type versionCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
}

func (v *versionCmd) FlagSet() *flag.FlagSet {
	return v.fs
}

func parseVersionCmd(args []string, r *root) (*versionCmd, error) {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	v := &versionCmd{root: r.subcommand("version"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(v)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.stdout, "pinchcrop version %s", version)
	if commit != "" {
		fmt.Fprintf(v.stdout, " (%s", commit)
		if date != "" {
			fmt.Fprintf(v.stdout, " %s", date)
		}
		fmt.Fprint(v.stdout, ")")
	}
	fmt.Fprintln(v.stdout)
	return nil
}
