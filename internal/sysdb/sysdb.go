// Package sysdb reads the flat system databases shells complete names from:
// /etc/group, /etc/passwd, /etc/hosts and /etc/services.
//
// Parsing is lenient. Comments, blank lines and malformed lines are skipped;
// an error is returned only when a file cannot be read at all.
package sysdb

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Group is an entry of /etc/group.
type Group struct {
	Name    string
	GID     int
	Members []string
}

// DisplayName returns the group name.
func (g Group) DisplayName() string { return g.Name }

// User is an entry of /etc/passwd.
type User struct {
	Name  string
	UID   int
	GID   int
	Home  string
	Shell string
}

// DisplayName returns the login name.
func (u User) DisplayName() string { return u.Name }

// Host is an entry of /etc/hosts.
type Host struct {
	Addr      string
	Canonical string
	Aliases   []string
}

// Names returns the canonical host name followed by its aliases.
func (h Host) Names() []string {
	return append([]string{h.Canonical}, h.Aliases...)
}

// Service is an entry of /etc/services.
type Service struct {
	Name     string
	Port     int
	Protocol string
	Aliases  []string
}

// Names returns the service name followed by its aliases.
func (s Service) Names() []string {
	return append([]string{s.Name}, s.Aliases...)
}

// DB reads system databases below a root directory.
type DB struct {
	fs   afero.Fs
	root string
}

// NewDB creates a DB reading <root>/etc/*. An empty root means "/".
func NewDB(fsys afero.Fs, root string) *DB {
	if root == "" {
		root = "/"
	}
	return &DB{fs: fsys, root: root}
}

// Groups parses /etc/group.
func (db *DB) Groups() ([]Group, error) {
	var groups []Group
	err := db.scan("group", func(line string) {
		fields := strings.Split(line, ":")
		if len(fields) < 3 || fields[0] == "" {
			return
		}
		gid, err := strconv.Atoi(fields[2])
		if err != nil {
			return
		}
		g := Group{Name: fields[0], GID: gid}
		if len(fields) > 3 && fields[3] != "" {
			g.Members = strings.Split(fields[3], ",")
		}
		groups = append(groups, g)
	})
	return groups, err
}

// Users parses /etc/passwd.
func (db *DB) Users() ([]User, error) {
	var users []User
	err := db.scan("passwd", func(line string) {
		fields := strings.Split(line, ":")
		if len(fields) < 7 || fields[0] == "" {
			return
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			return
		}
		gid, err := strconv.Atoi(fields[3])
		if err != nil {
			return
		}
		users = append(users, User{
			Name:  fields[0],
			UID:   uid,
			GID:   gid,
			Home:  fields[5],
			Shell: fields[6],
		})
	})
	return users, err
}

// Hosts parses /etc/hosts.
func (db *DB) Hosts() ([]Host, error) {
	var hosts []Host
	err := db.scan("hosts", func(line string) {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return
		}
		hosts = append(hosts, Host{Addr: fields[0], Canonical: fields[1], Aliases: fields[2:]})
	})
	return hosts, err
}

// Services parses /etc/services.
func (db *DB) Services() ([]Service, error) {
	var services []Service
	err := db.scan("services", func(line string) {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return
		}
		portStr, proto, ok := strings.Cut(fields[1], "/")
		if !ok {
			return
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return
		}
		services = append(services, Service{
			Name:     fields[0],
			Port:     port,
			Protocol: proto,
			Aliases:  fields[2:],
		})
	})
	return services, err
}

// scan calls fn for every non-blank line of /etc/<name> with comments removed.
func (db *DB) scan(name string, fn func(line string)) error {
	path := filepath.Join(db.root, "etc", name)
	data, err := afero.ReadFile(db.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fn(line)
	}
	return scanner.Err()
}
