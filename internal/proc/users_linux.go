//go:build linux

package proc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/HadrienG2/benchmon/pkg/model"
)

// utmpPath is the glibc login accounting database. Tests repoint it at
// fixture files.
var utmpPath = "/var/run/utmp"

// utmpRecord mirrors struct utmp from <utmp.h> on 64-bit Linux:
// 384 bytes per record, native byte order.
type utmpRecord struct {
	Type    int16
	_       [2]byte
	Pid     int32
	Line    [32]byte
	ID      [4]byte
	User    [32]byte
	Host    [256]byte
	Exit    [4]byte
	Session int32
	Sec     int32
	Usec    int32
	AddrV6  [4]uint32
	_       [20]byte
}

const userProcess = 7 // ut_type of an active login session

// Users lists the currently logged-in sessions recorded in utmp.
// Systems without the database (containers, musl) report none.
func Users() ([]model.UserSession, error) {
	raw, err := os.ReadFile(utmpPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading utmp: %w", err)
	}
	return parseUtmp(raw)
}

func parseUtmp(raw []byte) ([]model.UserSession, error) {
	recSize := binary.Size(utmpRecord{})
	if len(raw)%recSize != 0 {
		return nil, fmt.Errorf("utmp: %d bytes is not a whole number of %d-byte records", len(raw), recSize)
	}

	var sessions []model.UserSession
	r := bytes.NewReader(raw)
	for r.Len() > 0 {
		var rec utmpRecord
		if err := binary.Read(r, binary.NativeEndian, &rec); err != nil {
			return nil, fmt.Errorf("utmp: %w", err)
		}
		if rec.Type != userProcess {
			continue
		}
		sessions = append(sessions, model.UserSession{
			User:     cString(rec.User[:]),
			Terminal: cString(rec.Line[:]),
			ID:       cString(rec.ID[:]),
			Host:     cString(rec.Host[:]),
			Addr:     utmpAddr(rec.AddrV6),
			Session:  rec.Session,
			LoginPid: model.Pid(rec.Pid),
			Time:     time.Unix(int64(rec.Sec), int64(rec.Usec)*1000),
		})
	}
	return sessions, nil
}

// utmpAddr renders ut_addr_v6. IPv4 logins only use the first word;
// local logins leave the whole field zero.
func utmpAddr(a [4]uint32) string {
	if a == ([4]uint32{}) {
		return ""
	}
	if a[1] == 0 && a[2] == 0 && a[3] == 0 {
		ip := make(net.IP, 4)
		binary.NativeEndian.PutUint32(ip, a[0])
		return ip.String()
	}
	ip := make(net.IP, 16)
	for i := 0; i < 4; i++ {
		binary.NativeEndian.PutUint32(ip[i*4:], a[i])
	}
	return ip.String()
}
