package main

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/lineparse/schema"
)

const kvSchema = `
name: kv
fields:
  - {name: key, type: string}
  - {name: port, type: "u16?"}
  - {name: note, type: string}
steps:
  - take: {until: "=", into: key}
  - take: {until: ";", into: port}
  - rest: {into: note}
`

func mustSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse([]byte(kvSchema))
	if err != nil {
		t.Fatalf("schema.Parse error: %v", err)
	}
	return s
}

func TestProcess(t *testing.T) {
	input := strings.Join([]string{
		"http=80;web",
		"no separator here",
		"https=;tls",
		"bad=99999;overflow",
		"ssh=22;",
	}, "\n")

	tests := []struct {
		name    string
		opts    runOptions
		stats   runStats
		lines   int
		wantErr bool
	}{
		{"skip", runOptions{onFailure: failureSkip}, runStats{Lines: 5, Parsed: 3, Failed: 1, Faults: 1}, 3, false},
		{"log", runOptions{onFailure: failureLog}, runStats{Lines: 5, Parsed: 3, Failed: 1, Faults: 1}, 3, false},
		{"fail", runOptions{onFailure: failureFail}, runStats{Lines: 2, Parsed: 1, Failed: 1}, 1, true},
		{"strict", runOptions{strict: true}, runStats{Lines: 4, Parsed: 2, Failed: 1, Faults: 1}, 2, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			tc.opts.source = "test"
			stats, err := process(mustSchema(t), strings.NewReader(input), &out, tc.opts)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			stats.Duration = 0
			if stats != tc.stats {
				t.Errorf("stats = %+v, want %+v", stats, tc.stats)
			}
			if got := strings.Count(out.String(), "\n"); got != tc.lines {
				t.Errorf("wrote %d records, want %d:\n%s", got, tc.lines, out.String())
			}
		})
	}
}

func TestProcessJSON(t *testing.T) {
	var out bytes.Buffer
	if _, err := process(mustSchema(t), strings.NewReader("http=80;web\nhttps=;tls\n"), &out, runOptions{}); err != nil {
		t.Fatal(err)
	}

	want := `{"key":"http","port":80,"note":"web"}` + "\n" + `{"key":"https","port":null,"note":"tls"}` + "\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestParseFailureMode(t *testing.T) {
	for in, want := range map[string]failureMode{"skip": failureSkip, "log": failureLog, "fail": failureFail} {
		got, err := parseFailureMode(in)
		if err != nil || got != want {
			t.Errorf("parseFailureMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseFailureMode("ignore"); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestExplain(t *testing.T) {
	var out bytes.Buffer
	if err := explain(mustSchema(t), &out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"schema kv",
		"port             *uint16          Port",
		"plan record",
		`take until "=" -> record.Key string`,
		"0002  rest     -> record.Note string",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("explain output missing %q:\n%s", want, out.String())
		}
	}
}

func TestInteractiveModel(t *testing.T) {
	m, err := newInteractiveModel(mustSchema(t), "kv.yaml")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line  string
		state parseState
	}{
		{"", stateEmpty},
		{"http=80;web", stateParsed},
		{"nothing", stateFallback},
		{"x=70000;y", stateFault},
	}
	for _, tc := range tests {
		m.parse(tc.line)
		if m.state != tc.state {
			t.Errorf("parse(%q) state = %v, want %v", tc.line, m.state, tc.state)
		}
	}

	m.parse("http=80;web")
	view := m.View()
	for _, want := range []string{"kv.yaml", "parsed", "http", "80"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ}); cmd != nil {
		t.Error("toggle returned a command")
	}
	if !m.showJSON || !strings.Contains(m.View(), `"key": "http"`) {
		t.Error("ctrl+j did not switch to json view")
	}
}
