package compiler

import (
	"fmt"
	"strconv"

	"go.trai.ch/pipgen/internal/core/domain"
)

const (
	visibilityPublic      = "//visibility:public"
	visibilitySubpackages = "//:__subpackages__"
	visibilityPrivate     = "//visibility:private"
)

func versionTarget(version int) string {
	return fmt.Sprintf("py%d", version)
}

func environmentTarget(version int, platform string) string {
	return fmt.Sprintf("py%d_%s", version, platform)
}

func pythonVersionLabel(version int) string {
	return fmt.Sprintf("@bazel_tools//tools/python:PY%d", version)
}

func platformLabel(rulesRepo, platform string) string {
	return "@" + rulesRepo + "//platforms:" + platform
}

func sourceRepoLabel(source string) string {
	return "@" + domain.SourceRepoName(source)
}

func sourceLibLabel(source string) string {
	return sourceRepoLabel(source) + "//:lib"
}

func packageLabel(name string) string {
	return "//" + name
}

func local(target string) string {
	return ":" + target
}

// quote renders s as a Starlark string literal.
func quote(s string) string {
	return strconv.Quote(s)
}
