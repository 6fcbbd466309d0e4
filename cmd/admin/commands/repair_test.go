package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Kapilrajreddy/youtube-api/internal/maintenance"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	report := maintenance.Report{
		Deleted: map[string]int64{"likes.video -> videos": 2, "comments.video -> videos": 1},
		Pulled:  map[string]int64{"playlists.videos -> videos": 4},
	}
	require.NoError(t, printReport(cmd, report))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "REFERENCE"))
	assert.True(t, strings.HasPrefix(lines[1], "comments.video -> videos"), "sorted by reference")
	assert.Contains(t, lines[3], "entry")
	assert.True(t, strings.HasSuffix(lines[4], "7"))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"indexes", "repair", "user", "token"} {
		assert.True(t, names[want], want)
	}
	assert.Error(t, tokenCmd.Args(tokenCmd, nil), "username is required")
}
