package cli

import (
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomkd/internal/ui/pretty"
)

// flagNamesAnnotation marks commands whose help lists the render flag
// names; the value is the space-separated list.
const flagNamesAnnotation = "gomkd/flag-names"

// helpWrapWidth is the column render flag names are wrapped at.
const helpWrapWidth = 76

// helpStyles colors the sections of command help.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .Aliases}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if .IsAvailableCommand}}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- with index .Annotations flagNamesAnnotation}}

{{ heading "Render flag names:" }}
{{ names . }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ .CommandPath }} [command] --help" for more information about a command.
{{- end}}
`

// applyHelp installs styled help and usage output on root and, through
// inheritance, every subcommand. Color follows --color and the writer the
// help goes to.
func applyHelp(root *cobra.Command) {
	tmpl := func(cmd *cobra.Command) (*template.Template, error) {
		mode, err := cmd.Flags().GetString("color")
		if err != nil {
			mode = "auto"
		}
		styles := newHelpStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))
		return template.New("help").Funcs(template.FuncMap{
			"heading":             styles.heading.Render,
			"command":             styles.command.Render,
			"flags":               styles.flagUsages,
			"names":               styles.wrapNames,
			"rpad":                rpad,
			"join":                strings.Join,
			"trimRight":           func(s string) string { return strings.TrimRight(s, " \t\n") },
			"flagNamesAnnotation": func() string { return flagNamesAnnotation },
		}).Parse(helpTemplate)
	}

	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		t, err := tmpl(cmd)
		if err == nil {
			err = t.Execute(cmd.OutOrStdout(), cmd)
		}
		if err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		t, err := tmpl(cmd)
		if err != nil {
			return err
		}
		return t.Execute(cmd.OutOrStdout(), cmd)
	})
}

// flagUsages colors the flag column of pflag's usage text.
func (s helpStyles) flagUsages(fs *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(fs.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = s.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles "  -o, --output string   text": dashed tokens as flags,
// the value type dimmed. The column layout is kept.
func (s helpStyles) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	end := strings.Index(body, "  ")
	if end < 0 {
		return line
	}
	head, rest := body[:end], body[end:]

	tokens := strings.Split(head, " ")
	for i, tok := range tokens {
		name, comma := strings.CutSuffix(tok, ",")
		if strings.HasPrefix(name, "-") {
			name = s.flag.Render(name)
		} else {
			name = s.dim.Render(name)
		}
		if comma {
			name += ","
		}
		tokens[i] = name
	}
	return indent + strings.Join(tokens, " ") + rest
}

// wrapNames lays out space-separated names in indented, dimmed lines.
func (s helpStyles) wrapNames(names string) string {
	var lines []string
	line := " "
	for _, name := range strings.Fields(names) {
		if len(line)+1+len(name) > helpWrapWidth {
			lines = append(lines, s.dim.Render(line))
			line = " "
		}
		line += " " + name
	}
	if strings.TrimSpace(line) != "" {
		lines = append(lines, s.dim.Render(line))
	}
	return strings.Join(lines, "\n")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
