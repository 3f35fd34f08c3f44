package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCmd_RequiresMessage(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "classify")
	assert.Error(t, err)
}

func TestClassifyCmd_Kinds(t *testing.T) {
	setupCLI(t)

	output, err := execute(t, "classify",
		"not a statement",
		"cannot find symbol -   class Foo",
		"something new")
	require.NoError(t, err)

	assert.Contains(t, output, "Match:     exact\nCategory:  compiler.err.not.stmt\nSignature: not a statement\n")
	assert.Contains(t, output, "Match:     pattern\nCategory:  compiler.err.cant.resolve[class]\nSignature: cannot find symbol -   class Dcuk\n")
	assert.Contains(t, output, "Match:     unmatched\nCategory:  -\nSignature: something new\n")
}

func TestClassifyCmd_EscapedNewlines(t *testing.T) {
	setupCLI(t)

	output, err := execute(t, "classify", `unexpected type\n  required: variable\n  found:    value`)
	require.NoError(t, err)

	assert.Contains(t, output, "Message:   unexpected type ...\n")
	assert.Contains(t, output, "Category:  compiler.err.type.found.req\n")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", firstLine("one"))
	assert.Equal(t, "one ...", firstLine("one\ntwo"))
	assert.Equal(t, "one ...", firstLine(`one\ntwo`))
}
