//go:build linux

package proc

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

func TestUtmpRecordSize(t *testing.T) {
	// struct utmp is 384 bytes on 64-bit glibc; a drifted layout would
	// silently misparse every record.
	if size := binary.Size(utmpRecord{}); size != 384 {
		t.Fatalf("utmpRecord is %d bytes, want 384", size)
	}
}

func TestParseUtmp(t *testing.T) {
	boot := utmpRecord{Type: 2, Sec: 1700000000}
	copy(boot.Line[:], "~")
	copy(boot.User[:], "reboot")

	login := utmpRecord{Type: userProcess, Pid: 4321, Session: 7, Sec: 1700003600, Usec: 250000}
	copy(login.Line[:], "pts/0")
	copy(login.ID[:], "ts/0")
	copy(login.User[:], "alice")
	copy(login.Host[:], "example.com")
	login.AddrV6[0] = binary.NativeEndian.Uint32([]byte{192, 0, 2, 1})

	var buf bytes.Buffer
	for _, rec := range []utmpRecord{boot, login} {
		if err := binary.Write(&buf, binary.NativeEndian, &rec); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := parseUtmp(buf.Bytes())
	if err != nil {
		t.Fatalf("parseUtmp: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want the boot record filtered out", len(sessions))
	}
	s := sessions[0]
	if s.User != "alice" || s.Terminal != "pts/0" || s.Host != "example.com" {
		t.Errorf("session = %+v", s)
	}
	if s.Addr != "192.0.2.1" {
		t.Errorf("Addr = %q, want 192.0.2.1", s.Addr)
	}
	if s.LoginPid != 4321 || s.Session != 7 {
		t.Errorf("pid %d session %d", s.LoginPid, s.Session)
	}
	if want := time.Unix(1700003600, 250000000); !s.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", s.Time, want)
	}
}

func TestParseUtmpLocalLogin(t *testing.T) {
	rec := utmpRecord{Type: userProcess, Pid: 1000, Sec: 1}
	copy(rec.Line[:], "tty1")
	copy(rec.User[:], "bob")

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, &rec); err != nil {
		t.Fatal(err)
	}

	sessions, err := parseUtmp(buf.Bytes())
	if err != nil {
		t.Fatalf("parseUtmp: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Addr != "" || sessions[0].Host != "" {
		t.Errorf("console login should carry no address, got %+v", sessions)
	}
}

func TestParseUtmpTruncated(t *testing.T) {
	if _, err := parseUtmp(make([]byte, 100)); err == nil {
		t.Fatal("a partial record must be rejected")
	}
}
