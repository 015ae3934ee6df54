package compiler

import (
	"bytes"

	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/zerr"
)

const wheelRulesFile = "//rules:wheel.bzl"

// SourceRules renders the .bzl file whose pip_install macro declares one
// repository per source of lf. Remote sources are fetched by URL and pinned
// by hash; local sources point into the local wheels package.
func (c *Compiler) SourceRules(lf *domain.LockFile) ([]byte, error) {
	blocks := make([]block, 0, len(lf.Sources))
	for _, name := range lf.SourceNames() {
		src := lf.Sources[name]
		w := wheel{Name: domain.SourceRepoName(name)}

		if src.URL != "" && !src.IsLocal() {
			w.URL = src.URL
			w.SHA256 = src.SHA256
		} else {
			if lf.LocalWheelsPackage == "" {
				return nil, zerr.With(domain.ErrLocalWheelsPackageUnset, "source", name)
			}
			w.Wheel = lf.LocalWheelsPackage + ":" + localFile(src)
		}
		blocks = append(blocks, block{template: "wheel", data: w})
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("\n")
	if err := templates.ExecuteTemplate(&buf, "load", "@"+c.rulesRepo+wheelRulesFile); err != nil {
		return nil, zerr.Wrap(err, "failed to render source rules")
	}
	if len(blocks) == 0 {
		buf.WriteString("    pass\n")
		return buf.Bytes(), nil
	}
	if err := renderBlocks(&buf, blocks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// localFile returns the vendored file name of a local source.
func localFile(src domain.Source) string {
	if src.File != "" {
		return src.File
	}
	return domain.ResolvedSource{URL: src.URL}.FileName()
}
