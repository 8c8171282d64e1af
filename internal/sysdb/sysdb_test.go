package sysdb

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	groupFile = `# comment
root:x:0:
wheel:x:10:alice,bob

broken-line
staff:x:notanumber:
users:x:100:
`
	passwdFile = `root:x:0:0:root:/root:/bin/bash
alice:x:1000:1000:Alice:/home/alice:/bin/zsh
short:x:1
`
	hostsFile = `127.0.0.1	localhost
::1	localhost ip6-localhost ip6-loopback # IPv6
10.0.0.5 db.internal db   # database

nohostname
`
	servicesFile = `# Network services, Internet style
ssh		22/tcp
http		80/tcp		www www-http	# WorldWideWeb HTTP
http		80/udp		www
bogus		notaport/tcp
kerberos	88/tcp		kerberos5 krb5
`
)

func setupDB(t *testing.T) *DB {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/sys/etc/group":    groupFile,
		"/sys/etc/passwd":   passwdFile,
		"/sys/etc/hosts":    hostsFile,
		"/sys/etc/services": servicesFile,
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return NewDB(fs, "/sys")
}

func TestGroups(t *testing.T) {
	groups, err := setupDB(t).Groups()
	require.NoError(t, err)

	assert.Equal(t, []Group{
		{Name: "root", GID: 0},
		{Name: "wheel", GID: 10, Members: []string{"alice", "bob"}},
		{Name: "users", GID: 100},
	}, groups)
	assert.Equal(t, "wheel", groups[1].DisplayName())
}

func TestUsers(t *testing.T) {
	users, err := setupDB(t).Users()
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, User{Name: "alice", UID: 1000, GID: 1000, Home: "/home/alice", Shell: "/bin/zsh"}, users[1])
	assert.Equal(t, "root", users[0].DisplayName())
}

func TestHosts(t *testing.T) {
	hosts, err := setupDB(t).Hosts()
	require.NoError(t, err)

	require.Len(t, hosts, 3)
	assert.Equal(t, []string{"localhost"}, hosts[0].Names())
	assert.Equal(t, []string{"localhost", "ip6-localhost", "ip6-loopback"}, hosts[1].Names())
	assert.Equal(t, "10.0.0.5", hosts[2].Addr)
	assert.Equal(t, []string{"db.internal", "db"}, hosts[2].Names())
}

func TestServices(t *testing.T) {
	services, err := setupDB(t).Services()
	require.NoError(t, err)

	require.Len(t, services, 4)
	assert.Equal(t, Service{Name: "ssh", Port: 22, Protocol: "tcp", Aliases: []string{}}, services[0])
	assert.Equal(t, []string{"http", "www", "www-http"}, services[1].Names())
	assert.Equal(t, "udp", services[2].Protocol)
	assert.Equal(t, []string{"kerberos", "kerberos5", "krb5"}, services[3].Names())
}

func TestMissingFile(t *testing.T) {
	db := NewDB(afero.NewMemMapFs(), "")

	_, err := db.Groups()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/etc/group")
}
