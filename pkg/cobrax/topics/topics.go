// Package topics provides a topic-based help system for Cobra CLI
// applications. Topics are text or markdown files read from an fs.FS, so
// they can be embedded in the binary.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic represents a help topic
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Options configures the TopicManager
type Options struct {
	// Extensions defaults to [".txt", ".md"]
	Extensions []string
	// Renderer defaults to PlainRenderer
	Renderer Renderer
}

// NewWithOptions creates a TopicManager reading from fsys
func NewWithOptions(fsys fs.FS, opts Options) *TopicManager {
	tm := &TopicManager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}
	return tm
}

// Scan loads every topic file found in the filesystem
func (tm *TopicManager) Scan() error {
	return fs.WalkDir(tm.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{Name: name, FilePath: p, Content: string(content)}
		return nil
	})
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetTopic retrieves a topic by name, accepting flag-style names
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := tm.topics[name]; ok {
		return topic, true
	}
	topic, ok := tm.topics["option-"+name]
	return topic, ok
}

// ListTopics returns all topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns a topic's content through the configured renderer
func (tm *TopicManager) Render(topic *Topic) string {
	return tm.renderer.Render(topic.Content, path.Ext(topic.FilePath))
}

// Initialize installs a help command and help function on rootCmd that
// know about the topics in fsys
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := NewWithOptions(fsys, opts)
	if err := tm.Scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	tm.originalHelp = rootCmd.HelpFunc()
	name := rootCmd.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + name + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + name + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return
			}

			if args[0] == "topics" {
				tm.printList(cmd, name)
				return
			}

			if topic, ok := tm.GetTopic(args[0]); ok {
				fmt.Fprint(out, tm.Render(topic))
				return
			}

			// Not a topic: show help for the named command
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				target = rootCmd
			}
			tm.originalHelp(target, args)
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(helpCmd)

	return tm, nil
}

func (tm *TopicManager) printList(cmd *cobra.Command, rootName string) {
	out := cmd.OutOrStdout()
	names := tm.ListTopics()
	if len(names) == 0 {
		fmt.Fprintln(out, "No help topics available.")
		return
	}

	var options, general []string
	for _, n := range names {
		if strings.HasPrefix(n, "option-") {
			options = append(options, strings.TrimPrefix(n, "option-"))
		} else {
			general = append(general, n)
		}
	}

	fmt.Fprintln(out, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(out, "\nGeneral topics:")
		for _, n := range general {
			fmt.Fprintf(out, "  %s\n", n)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(out, "\nOption topics:")
		for _, n := range options {
			fmt.Fprintf(out, "  --%s\n", n)
		}
	}
	fmt.Fprintf(out, "\nUse '%s help <topic>' to read about a specific topic.\n", rootName)
}
