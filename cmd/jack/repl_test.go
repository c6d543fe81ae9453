package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/shenikar/jack_navigator/internal/dispatch"
	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIncidents struct {
	active  []*models.Incident
	history []*models.HistoryEntry
	err     error
}

func (s stubIncidents) ListActive(context.Context) ([]*models.Incident, error) {
	return s.active, s.err
}

func (s stubIncidents) ListHistory(context.Context) ([]*models.HistoryEntry, error) {
	return s.history, s.err
}

func newTestREPL(incidents IncidentReader) (*repl, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{WakeWord: "jack"}
	d := dispatch.NewDispatcher(dispatch.NewSession("en-US", "ta-IN"), dispatch.Collaborators{
		Speaker: consoleSpeaker{out: out},
	}, cfg, logger)
	return &repl{assistant: d, incidents: incidents, out: out}, out
}

func TestREPL_TranscriptsAndMeta(t *testing.T) {
	r, out := newTestREPL(stubIncidents{})
	input := strings.Join([]string{
		"hello",
		"jack ar mode",
		":lang",
		"jack something odd",
		":pos 13.05 80.25",
		":pos 200 1",
		":quit",
		"jack ar mode",
	}, "\n")

	err := r.Run(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "(ignored: no wake word)")
	assert.Contains(t, text, "jack [en-US]: AR mode enabled")
	assert.Contains(t, text, "locale: ta-IN")
	assert.Contains(t, text, "jack [ta-IN]: Sorry, I did not understand")
	assert.Contains(t, text, "position set to 13.05, 80.25")
	assert.Contains(t, text, "invalid coordinates")
	assert.Equal(t, 1, strings.Count(text, "AR mode"))

	pos, ok := r.assistant.Session().Position()
	require.True(t, ok)
	assert.Equal(t, models.Coordinates{Lat: 13.05, Lng: 80.25}, pos)
}

func TestREPL_Incidents(t *testing.T) {
	station := "மயிலாப்பூர் காவல் நிலையம்"
	r, out := newTestREPL(stubIncidents{active: []*models.Incident{
		{ID: 12, Status: models.StatusPending, Location: models.Coordinates{Lat: 13.03, Lng: 80.27}, NearestStation: &station, Timestamp: time.Now()},
		{ID: 13, Status: models.StatusInProgress, Timestamp: time.Now()},
	}})

	require.NoError(t, r.Run(context.Background(), strings.NewReader(":incidents\n")))

	text := out.String()
	assert.Contains(t, text, "STATUS")
	assert.Contains(t, text, station)
	assert.Contains(t, text, "In Progress")
}

func TestREPL_HistoryError(t *testing.T) {
	r, out := newTestREPL(stubIncidents{err: errors.New("redis down")})

	require.NoError(t, r.Run(context.Background(), strings.NewReader(":history\n:unknown\n")))

	assert.Contains(t, out.String(), "could not list history: redis down")
	assert.Contains(t, out.String(), "commands:")
}

func TestWriteTable_AlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeTable(&buf, []string{"ID", "NAME"}, [][]string{
		{"1", "日本"},
		{"22", "ab"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID  NAME", lines[0])
	assert.Equal(t, "--  ----", lines[1])
	assert.Equal(t, "1   日本", lines[2])
	assert.Equal(t, "22  ab  ", lines[3])
}
