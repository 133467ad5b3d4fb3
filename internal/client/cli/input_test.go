package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &prompter{in: bufio.NewReader(strings.NewReader(input)), out: out}, out
}

func TestPrompter_Ask(t *testing.T) {
	p, out := newPrompter("  hello \nlast")

	v, err := p.Ask("Say")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.Equal(t, "Say: ", out.String())

	v, err = p.Ask("Again")
	require.NoError(t, err)
	assert.Equal(t, "last", v)

	_, err = p.Ask("Empty")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_AskDefault(t *testing.T) {
	p, out := newPrompter("\nHappy\n")

	v, err := p.AskDefault("Mood", "Curious")
	require.NoError(t, err)
	assert.Equal(t, "Curious", v)
	assert.Contains(t, out.String(), "Mood [Curious]: ")

	v, err = p.AskDefault("Mood", "Curious")
	require.NoError(t, err)
	assert.Equal(t, "Happy", v)
}

func TestPrompter_Confirm(t *testing.T) {
	p, _ := newPrompter("Y\nno\n")

	ok, err := p.Confirm("Sure?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm("Sure?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrompter_Password(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })

	isTerminal = func(int) bool { return false }
	p, _ := newPrompter("piped\n")
	v, err := p.Password("Password")
	require.NoError(t, err)
	assert.Equal(t, "piped", v)

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	p, out := newPrompter("")
	_, err = p.Password("Password")
	assert.EqualError(t, err, "no tty")
	assert.Equal(t, "Password: \n", out.String())
}
