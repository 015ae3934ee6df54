// Package requirements parses pip requirements files.
package requirements

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RequirementsParser = (*Parser)(nil)

var (
	requirementLine = regexp.MustCompile(
		`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(?:\[([^\]]*)\])?\s*([^;]*?)\s*(?:;\s*(.*))?$`,
	)
	specifierStart = regexp.MustCompile(`^(==|!=|<=|>=|~=|===|<|>|@)`)
)

// Options that take a value, as accepted by pip in requirements files.
var valueOptions = map[string]bool{
	"-i":                true,
	"--index-url":       true,
	"--extra-index-url": true,
	"-f":                true,
	"--find-links":      true,
	"--trusted-host":    true,
	"--no-binary":       true,
	"--only-binary":     true,
	"--use-feature":     true,
	"--global-option":   true,
	"--install-option":  true,
}

// Parser implements ports.RequirementsParser.
type Parser struct {
	logger ports.Logger
}

// NewParser creates a new Parser.
func NewParser(logger ports.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse reads the requirements file at path. Requirement lines become direct
// requests; "-r" includes are followed relative to the including file; other
// options are returned verbatim for the resolution engine.
func (p *Parser) Parse(path string) (*domain.RequirementSet, error) {
	set := &domain.RequirementSet{}
	if err := p.parseFile(path, set, map[string]bool{}); err != nil {
		return nil, err
	}
	return set, nil
}

func (p *Parser) parseFile(path string, set *domain.RequirementSet, active map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRequirementsRead.Error()), "path", path)
	}
	if active[abs] {
		err := zerr.Wrap(zerr.New("requirements files include each other"), domain.ErrRequirementsParse.Error())
		return zerr.With(err, "path", path)
	}
	active[abs] = true
	defer delete(active, abs)

	p.logger.Debug("parsing requirements file " + path)

	//nolint:gosec // Path is provided by the user on purpose
	content, err := os.ReadFile(abs)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRequirementsRead.Error()), "path", path)
	}

	for line := range logicalLines(content) {
		if err := p.parseLine(abs, line, set, active); err != nil {
			return zerr.With(zerr.With(err, "path", path), "line", line.number)
		}
	}
	return nil
}

func (p *Parser) parseLine(path string, line logicalLine, set *domain.RequirementSet, active map[string]bool) error {
	text := stripComment(line.text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "-") {
		return p.parseOption(path, text, set, active)
	}

	// Per-requirement options such as --hash are not part of the request.
	if idx := strings.Index(text, " --"); idx >= 0 {
		p.logger.Debug("ignoring per-requirement options: " + strings.TrimSpace(text[idx:]))
		text = strings.TrimSpace(text[:idx])
	}

	req, err := parseRequirement(text)
	if err != nil {
		return err
	}
	req.Origin = fmt.Sprintf("%s:%d", path, line.number)
	set.Requests = append(set.Requests, req)
	return nil
}

func (p *Parser) parseOption(path, text string, set *domain.RequirementSet, active map[string]bool) error {
	name, value := splitOption(text)

	switch name {
	case "-r", "--requirement":
		if value == "" {
			return zerr.With(domain.ErrRequirementsParse, "option", name)
		}
		include := value
		if !filepath.IsAbs(include) {
			include = filepath.Join(filepath.Dir(path), include)
		}
		return p.parseFile(include, set, active)
	case "-e", "--editable":
		return zerr.With(zerr.Wrap(zerr.New("editable requirements are not supported"),
			domain.ErrRequirementsParse.Error()), "option", name)
	case "-c", "--constraint":
		p.logger.Warn("constraints files are not supported, ignoring " + value)
		return nil
	}

	if valueOptions[name] {
		if value == "" {
			return zerr.With(domain.ErrRequirementsParse, "option", name)
		}
		set.Options = append(set.Options, name, value)
		return nil
	}
	set.Options = append(set.Options, text)
	return nil
}

// splitOption separates "-r file", "-rfile", "--requirement=file" and
// "--requirement file" into name and value.
func splitOption(text string) (string, string) {
	if strings.HasPrefix(text, "--") {
		if name, value, ok := strings.Cut(text, "="); ok && !strings.ContainsAny(name, " \t") {
			return name, strings.TrimSpace(value)
		}
		fields := strings.Fields(text)
		return fields[0], strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
	}

	if len(text) <= 2 {
		return text, ""
	}
	return text[:2], strings.TrimSpace(text[2:])
}

func parseRequirement(text string) (domain.PackageRequest, error) {
	m := requirementLine.FindStringSubmatch(text)
	if m == nil {
		return domain.PackageRequest{}, zerr.With(domain.ErrRequirementsParse, "requirement", text)
	}

	specifier := m[3]
	if !strings.HasPrefix(specifier, "@") {
		specifier = strings.Join(strings.Fields(specifier), "")
	}
	if specifier != "" && !specifierStart.MatchString(specifier) {
		return domain.PackageRequest{}, zerr.With(domain.ErrRequirementsParse, "requirement", text)
	}
	if strings.HasPrefix(specifier, "@") {
		specifier = " " + specifier
	}

	var extras []string
	for extra := range strings.SplitSeq(m[2], ",") {
		extras = append(extras, strings.TrimSpace(extra))
	}

	return domain.PackageRequest{
		Name:      m[1],
		Extras:    domain.SortedSet(extras),
		Specifier: specifier,
		Marker:    strings.TrimSpace(m[4]),
		IsDirect:  true,
	}, nil
}

// stripComment removes a "#" comment that starts the line or follows whitespace.
func stripComment(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "#") {
		return ""
	}
	for i := 1; i < len(text); i++ {
		if text[i] == '#' && (text[i-1] == ' ' || text[i-1] == '\t') {
			return strings.TrimSpace(text[:i])
		}
	}
	return text
}

type logicalLine struct {
	number int
	text   string
}

// logicalLines joins backslash continuations. Each logical line reports the
// number of its first physical line.
func logicalLines(content []byte) func(yield func(logicalLine) bool) {
	return func(yield func(logicalLine) bool) {
		scanner := bufio.NewScanner(bytes.NewReader(content))
		var (
			buf   strings.Builder
			start int
		)
		number := 0
		for scanner.Scan() {
			number++
			text := strings.TrimRight(scanner.Text(), " \t\r")
			if buf.Len() == 0 {
				start = number
			}
			if cut, ok := strings.CutSuffix(text, `\`); ok {
				buf.WriteString(cut)
				buf.WriteString(" ")
				continue
			}
			buf.WriteString(text)
			if !yield(logicalLine{number: start, text: buf.String()}) {
				return
			}
			buf.Reset()
		}
		if buf.Len() > 0 {
			yield(logicalLine{number: start, text: buf.String()})
		}
	}
}
