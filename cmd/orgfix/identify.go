package main

import (
	"fmt"

	"github.com/alnah/go-orgfix"
	"github.com/alnah/go-orgfix/internal/fileutil"
)

// runIdentify prints the monthly identity of each argument: a page file,
// resolved against the site root, or a URL or URL path.
func runIdentify(args []string, env *Environment) error {
	flags, positional, err := parseIdentifyFlags(args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: identify needs at least one path or URL", ErrUsage)
	}

	cfg, _, err := loadConfig(flags.config, env)
	if err != nil {
		return err
	}
	s := site{root: cfg.Site.Root, basePath: cfg.Site.BasePath}
	if flags.root != "" {
		s.root = flags.root
	}
	if flags.basePath != "" {
		s.basePath = flags.basePath
	}

	for _, arg := range positional {
		id, ok := identify(arg, s)
		if !ok {
			fmt.Fprintf(env.Stdout, "%s\tnot monthly\n", arg)
			continue
		}
		fmt.Fprintf(env.Stdout, "%s\t%s\n", arg, id)
	}
	return nil
}

// identify resolves the identity of a single argument. Existing files map
// to their URL path; anything else is parsed as a URL.
func identify(arg string, s site) (orgfix.PageIdentity, bool) {
	if !fileutil.IsURL(arg) && fileutil.FileExists(arg) {
		return orgfix.ResolvePageIdentity(s.urlPath(arg))
	}
	return orgfix.PageIdentityFromURL(arg)
}
