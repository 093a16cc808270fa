package app

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdrill/internal/library"
	"github.com/abhisek/quizdrill/internal/store"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	lib := library.Open(context.Background(), store.NewRepo(s.KV()), library.Options{
		Encoding: "utf-8",
		Log:      zerolog.Nop(),
	})
	_, err = lib.Import(context.Background(), "bank.csv", []byte(
		"id,type,prompt,A,B,C,D,E,answer\nQ1,single,Largest planet?,Mars,Jupiter,,,,B\n"))
	require.NoError(t, err)
	return newAppModel(lib)
}

func TestAppModel_RendersHomeFrame(t *testing.T) {
	m := testModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := updated.(AppModel).View()
	assert.True(t, view.AltScreen)
	assert.Equal(t, "Home", updated.(AppModel).router.Active().Title())
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
