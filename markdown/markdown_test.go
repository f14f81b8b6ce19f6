package markdown_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/forestxieCode/a2ui"
	"github.com/forestxieCode/a2ui/markdown"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	// Matches SGR, cursor movement, and other CSI sequences.
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Force ANSI color output so styled elements (headings, links) produce
	// visible escape codes that we can assert against.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := a2ui.DefaultTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render("", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("hello world", 80, theme)
		assert.Contains(t, stripANSI(result), "hello world")
	})

	t.Run("heading renders content with distinct styling", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render("# Title", 80, theme)
		paragraph := markdown.Render("Title", 80, theme)
		assert.Contains(t, stripANSI(heading), "Title")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("bold text", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("**bold**", 80, theme)
		assert.Contains(t, stripANSI(result), "bold")
	})

	t.Run("link shows name and destination", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("[Jade Garden](https://restaurants.example.com/r/abc)", 80, theme)
		plain := stripANSI(result)
		assert.Contains(t, plain, "Jade Garden")
		assert.Contains(t, plain, "(https://restaurants.example.com/r/abc)")
	})

	t.Run("fenced code block preserves content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```json\n{\"restaurants\": []}\n```"
		result := markdown.Render(src, 10, theme)
		plain := stripANSI(result)
		assert.Contains(t, plain, "json")
		assert.Contains(t, plain, `{"restaurants": []}`)
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("- one\n- two", 80, theme)
		plain := stripANSI(result)
		assert.Contains(t, plain, "- one")
		assert.Contains(t, plain, "- two")
	})

	t.Run("ordered list keeps numbering", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("1. first\n2. second", 80, theme)
		plain := stripANSI(result)
		assert.Contains(t, plain, "1. first")
		assert.Contains(t, plain, "2. second")
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		src := strings.Repeat("word ", 20)
		result := markdown.Render(src, 20, theme)
		for _, line := range strings.Split(stripANSI(result), "\n") {
			assert.LessOrEqual(t, len(line), 20)
		}
	})

	t.Run("no trailing newline", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("hello", 80, theme)
		assert.False(t, strings.HasSuffix(result, "\n"))
	})
}

func TestRenderInline(t *testing.T) {
	t.Parallel()

	theme := a2ui.DefaultTheme()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.RenderInline("", theme))
	})

	t.Run("info link", func(t *testing.T) {
		t.Parallel()
		result := markdown.RenderInline("[Golden Dragon](https://restaurants.example.com/r/xyz)", theme)
		plain := stripANSI(result)
		assert.Contains(t, plain, "Golden Dragon")
		assert.Contains(t, plain, "(https://restaurants.example.com/r/xyz)")
		assert.NotContains(t, plain, "[", "markdown syntax does not leak through")
	})

	t.Run("plain text passes through", func(t *testing.T) {
		t.Parallel()
		result := markdown.RenderInline("Golden Dragon", theme)
		assert.Equal(t, "Golden Dragon", stripANSI(result))
	})
}
