package appmanager

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	name     string
	startErr error
	events   *[]string
}

func (s *recordingService) Name() string { return s.name }

func (s *recordingService) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	*s.events = append(*s.events, "start "+s.name)
	return nil
}

func (s *recordingService) Stop() error {
	*s.events = append(*s.events, "stop "+s.name)
	return nil
}

func TestAppManager_StartStopOrder(t *testing.T) {
	var events []string
	am := NewAppManager()
	am.RegisterService(&recordingService{name: "a", events: &events})
	am.RegisterService(&recordingService{name: "b", events: &events})

	require.NoError(t, am.StartAll())
	require.NoError(t, am.StopAll())
	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestAppManager_FailedStartUnwinds(t *testing.T) {
	var events []string
	am := NewAppManager()
	am.RegisterService(&recordingService{name: "a", events: &events})
	am.RegisterService(&recordingService{name: "b", events: &events, startErr: errors.New("port in use")})
	am.RegisterService(&recordingService{name: "c", events: &events})

	err := am.StartAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service b")
	assert.Equal(t, []string{"start a", "stop a"}, events)
}

func TestLoadServiceSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
services:
  - name: recon
    start_order: 2
    config:
      port: 9000
      tolerance: "1.00"
  - name: logger
    start_order: 1
    config:
      folder_path: ./logs
`), 0644))

	seq, err := LoadServiceSequence(path)
	require.NoError(t, err)
	require.Len(t, seq, 2)
	assert.Equal(t, "logger", seq[0].Name)
	assert.Equal(t, "recon", seq[1].Name)
	assert.Equal(t, 9000, seq[1].Config["port"])

	am := NewAppManager()
	require.NoError(t, am.AutoRegisterServices(seq))
	assert.NotNil(t, am.GetServiceByName("recon"))
	assert.NotNil(t, am.GetServiceByName("logger"))
	assert.Nil(t, am.GetServiceByName("fx"))
}

func TestAutoRegisterServices_UnknownName(t *testing.T) {
	err := NewAppManager().AutoRegisterServices([]ServiceConfig{{Name: "cash"}})
	assert.Error(t, err)
}
