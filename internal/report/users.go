package report

import (
	"sort"

	"go.uber.org/zap"

	"github.com/HadrienG2/benchmon/pkg/model"
)

func reportUsers(log *zap.Logger, sessions []model.UserSession) {
	if len(sessions) == 0 {
		return
	}
	log.Debug("Processing user connection list...")

	type userStats struct {
		connections int
		sessions    map[int32][]model.Pid
	}
	byUser := make(map[string]*userStats)
	for _, s := range sessions {
		log.Debug("Found a new user connection",
			zap.String("username", s.User),
			zap.String("terminal", s.Terminal),
			zap.String("terminal_id", s.ID),
			zap.String("remote_host", s.Host),
			zap.String("remote_addr", s.Addr),
			zap.Int32("login_pid", int32(s.LoginPid)),
			zap.Int32("session_id", s.Session))

		stats := byUser[s.User]
		if stats == nil {
			stats = &userStats{sessions: make(map[int32][]model.Pid)}
			byUser[s.User] = stats
		}
		stats.connections++
		stats.sessions[s.Session] = append(stats.sessions[s.Session], s.LoginPid)
	}

	users := make([]string, 0, len(byUser))
	for user := range byUser {
		users = append(users, user)
	}
	sort.Strings(users)

	for _, user := range users {
		stats := byUser[user]
		userLog := log.With(zap.String("username", user))
		userLog.Info("Found a logged-in user", zap.Int("connection_count", stats.connections))

		ids := make([]int32, 0, len(stats.sessions))
		for id := range stats.sessions {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			pids := stats.sessions[id]
			sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
			raw := make([]int32, len(pids))
			for i, pid := range pids {
				raw[i] = int32(pid)
			}
			userLog.Info("Got details of a user session",
				zap.Int32("session_id", id),
				zap.Int32s("login_pids", raw))
		}
	}

	if len(byUser) > 1 {
		log.Warn("Detected multiple logged-in users, make sure others keep the system quiet while your benchmarks are running!")
	}
}
