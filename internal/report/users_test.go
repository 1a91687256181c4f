package report

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/HadrienG2/benchmon/pkg/model"
)

func TestReportUsersSingleUser(t *testing.T) {
	log, logs := observed()
	reportUsers(log, []model.UserSession{
		{User: "alice", Terminal: "pts/1", Session: 7, LoginPid: 5000},
		{User: "alice", Terminal: "pts/0", Session: 7, LoginPid: 4321},
	})

	users := logs.FilterMessage("Found a logged-in user").All()
	require.Len(t, users, 1)
	require.Equal(t, "alice", users[0].ContextMap()["username"])
	require.EqualValues(t, 2, users[0].ContextMap()["connection_count"])

	sessions := logs.FilterMessage("Got details of a user session").All()
	require.Len(t, sessions, 1)
	fields := sessions[0].ContextMap()
	require.EqualValues(t, 7, fields["session_id"])
	require.Equal(t, []interface{}{int32(4321), int32(5000)}, fields["login_pids"],
		"login pids sorted within the session")

	require.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len(),
		"one user must not trigger the multi-user warning")
}

func TestReportUsersMultiUserWarning(t *testing.T) {
	log, logs := observed()
	reportUsers(log, []model.UserSession{
		{User: "bob", Terminal: "tty1", Session: 1, LoginPid: 900},
		{User: "alice", Terminal: "pts/0", Session: 7, LoginPid: 4321},
	})

	users := logs.FilterMessage("Found a logged-in user").All()
	require.Len(t, users, 2)
	require.Equal(t, "alice", users[0].ContextMap()["username"], "users in sorted order")

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "multiple logged-in users")
}

func TestReportUsersEmpty(t *testing.T) {
	log, logs := observed()
	reportUsers(log, nil)
	require.Zero(t, logs.Len())
}
