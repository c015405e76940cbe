package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// queueSource pops scripted answers in order; an empty answer means the
// operator accepted the default.
type queueSource struct {
	t       *testing.T
	answers []string
	next    int
	asked   []string
	warns   []string
}

func (s *queueSource) pop() string {
	if s.next >= len(s.answers) {
		s.t.Fatalf("prompt script exhausted after %d answers", len(s.answers))
	}
	answer := s.answers[s.next]
	s.next++
	return answer
}

func (s *queueSource) Ask(label, def string) (string, error) {
	s.asked = append(s.asked, label)
	if answer := s.pop(); answer != "" {
		return answer, nil
	}
	return def, nil
}

func (s *queueSource) AskSecret(label string) (string, error) {
	s.asked = append(s.asked, label)
	return s.pop(), nil
}

func (s *queueSource) Warn(msg string) { s.warns = append(s.warns, msg) }

func TestCollector_EnsureNoneIsSilent(t *testing.T) {
	cfg := Defaults()
	source := &queueSource{t: t}
	c := NewCollector(&cfg, source)

	require.NoError(t, c.Ensure(GroupNone))
	require.Empty(t, source.asked)
}

func TestCollector_ProjectGroupPromptsOnce(t *testing.T) {
	cfg := Defaults()
	source := &queueSource{t: t, answers: []string{"shop", "", "apache-2.0"}}
	c := NewCollector(&cfg, source)

	require.NoError(t, c.Ensure(GroupProject))
	require.Equal(t, "shop", cfg.ProjectName)
	require.Equal(t, "shop", cfg.ProjectDir)
	require.Equal(t, "http://localhost:3000/api", cfg.APIURL)
	require.Equal(t, "apache-2.0", cfg.License)

	// A second Ensure must not prompt again.
	asked := len(source.asked)
	require.NoError(t, c.Ensure(GroupProject))
	require.Equal(t, asked, len(source.asked))
}

func TestCollector_DatabaseGroupDerivesNameFromProject(t *testing.T) {
	cfg := Defaults()
	source := &queueSource{t: t, answers: []string{
		"my-shop", "", "none", // project
		"", "", "", "", "secret", // database, accepting defaults
	}}
	c := NewCollector(&cfg, source)

	require.NoError(t, c.Ensure(GroupProject))
	require.NoError(t, c.Ensure(GroupDatabase))

	require.Equal(t, "my_shop_dev", cfg.DBName)
	require.Equal(t, "secret", cfg.DBPassword)
}

func TestCollector_PresetFieldsAreNotPrompted(t *testing.T) {
	cfg := Defaults()
	cfg.DBHost = "db.local"
	cfg.DBPort = 5433
	cfg.DBName = "mydb"
	cfg.DBUser = "alice"
	cfg.DBPassword = ""

	source := &queueSource{t: t}
	c := NewCollector(&cfg, source)
	c.MarkPreset("project_name", "project_dir", "api_url", "license")
	c.MarkPreset("db_host", "db_port", "db_name", "db_user", "db_password")

	require.NoError(t, c.Ensure(GroupDatabase))
	require.Empty(t, source.asked)
	require.Equal(t, "db.local", cfg.DBHost)
}

func TestCollector_DatabasePrefillsFromProjectEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "DB_HOST=db.local\nDB_PORT=5433\nDB_NAME=mydb\nDB_USER=alice\nDB_PASSWORD=secret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFileName), []byte(content), 0o600))

	cfg := Defaults()
	cfg.ProjectDir = dir
	source := &queueSource{t: t}
	c := NewCollector(&cfg, source)
	c.MarkPreset("project_name", "project_dir", "api_url", "license")

	// Every database value comes from the env file, so nothing is asked.
	require.NoError(t, c.Ensure(GroupDatabase))
	require.Empty(t, source.asked)

	require.Equal(t, "db.local", cfg.DBHost)
	require.Equal(t, 5433, cfg.DBPort)
	require.Equal(t, "mydb", cfg.DBName)
	require.Equal(t, "alice", cfg.DBUser)
	require.Equal(t, "secret", cfg.DBPassword)
}

func TestCollector_InvalidValueWarnsAndReasks(t *testing.T) {
	cfg := Defaults()
	source := &queueSource{t: t, answers: []string{"Bad Name", "good-name", "", "mit"}}
	c := NewCollector(&cfg, source)

	require.NoError(t, c.Ensure(GroupProject))
	require.Equal(t, "good-name", cfg.ProjectName)
	require.Len(t, source.warns, 1)
}

func TestCollector_InvalidPortWarnsAndReasks(t *testing.T) {
	cfg := Defaults()
	source := &queueSource{t: t, answers: []string{
		"", "", "", // project group resolves first
		"", "abc", "99999", "5433", "", "", "",
	}}
	c := NewCollector(&cfg, source)

	require.NoError(t, c.Ensure(GroupDatabase))
	require.Equal(t, 5433, cfg.DBPort)
	require.Len(t, source.warns, 2)
}
