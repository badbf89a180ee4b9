package dialect

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Dialect names for the supported databases.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// DefaultPort is used by EngineURL when no port is given.
const DefaultPort = 10121

// Supported reports whether the dialect name is known.
func Supported(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres:
		return true
	default:
		return false
	}
}

// EngineURL assembles an SQLAlchemy engine URL from connection parameters.
// The username and password are escaped, the driver is appended to the
// dialect with a "+" and the service name becomes a query parameter.
func EngineURL(dialect, username, password, host string, port int, serviceName, driver string) string {
	if port == 0 {
		port = DefaultPort
	}
	var b strings.Builder
	b.WriteString(dialect)
	if driver != "" {
		b.WriteString("+")
		b.WriteString(driver)
	}
	fmt.Fprintf(&b, "://%s:%s@%s:%d", quote(username), quote(password), host, port)
	var params []string
	if serviceName != "" {
		params = append(params, "service_name="+serviceName)
	}
	if len(params) > 0 {
		b.WriteString("/?")
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}

// quote percent-encodes every byte of s except letters, digits, "_.-~"
// and "/", the set urllib.parse.quote keeps by default.
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '_', c == '.', c == '-', c == '~', c == '/':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&15])
		}
	}
	return b.String()
}

// Source describes a database to reflect.
type Source struct {
	Dialect     string `yaml:"dialect" toml:"dialect"`
	Driver      string `yaml:"driver" toml:"driver"`
	Host        string `yaml:"host" toml:"host"`
	Port        int    `yaml:"port" toml:"port"`
	User        string `yaml:"user" toml:"user"`
	Password    string `yaml:"password" toml:"password"`
	Database    string `yaml:"database" toml:"database"`
	ServiceName string `yaml:"service_name" toml:"service_name"`
	// Path is the database file for SQLite.
	Path string `yaml:"path" toml:"path"`
	// SSLMode is passed to postgres. Defaults to "disable".
	SSLMode string `yaml:"sslmode" toml:"sslmode"`
	// SlowQuery is the duration above which an inspection query is logged
	// as slow. Zero means 100ms.
	SlowQuery time.Duration `yaml:"slow_query" toml:"slow_query"`
}

// Validate reports configuration errors of the source.
func (s Source) Validate() error {
	if s.SlowQuery < 0 {
		return fmt.Errorf("dialect: negative slow_query threshold %s", s.SlowQuery)
	}
	switch s.Dialect {
	case SQLite:
		if s.Path == "" {
			return fmt.Errorf("dialect: sqlite source requires a path")
		}
	case MySQL, Postgres:
		if s.Host == "" {
			return fmt.Errorf("dialect: %s source requires a host", s.Dialect)
		}
	default:
		return fmt.Errorf("dialect: unsupported dialect %q", s.Dialect)
	}
	return nil
}

// DriverName returns the database/sql driver name for the source.
func (s Source) DriverName() string {
	if s.Dialect == Postgres {
		return "postgres"
	}
	return s.Dialect
}

// DSN returns the data source name for database/sql.
func (s Source) DSN() string {
	switch s.Dialect {
	case SQLite:
		return "file:" + s.Path + "?_pragma=foreign_keys(1)"
	case MySQL:
		cfg := mysql.NewConfig()
		cfg.User = s.User
		cfg.Passwd = s.Password
		cfg.Net = "tcp"
		cfg.Addr = s.hostPort(3306)
		cfg.DBName = s.Database
		cfg.ParseTime = true
		return cfg.FormatDSN()
	case Postgres:
		u := &url.URL{
			Scheme: "postgres",
			Host:   s.hostPort(5432),
			Path:   "/" + s.Database,
		}
		switch {
		case s.User != "" && s.Password != "":
			u.User = url.UserPassword(s.User, s.Password)
		case s.User != "":
			u.User = url.User(s.User)
		}
		mode := s.SSLMode
		if mode == "" {
			mode = "disable"
		}
		u.RawQuery = url.Values{"sslmode": {mode}}.Encode()
		return u.String()
	default:
		return ""
	}
}

// Redacted returns the engine URL of the source with the password masked.
func (s Source) Redacted() string {
	switch s.Dialect {
	case SQLite:
		return "sqlite:///" + s.Path
	case Postgres:
		return EngineURL("postgresql", s.User, "xxxxx", s.Host, s.port(5432), s.ServiceName, s.Driver) + s.database()
	default:
		return EngineURL(s.Dialect, s.User, "xxxxx", s.Host, s.port(3306), s.ServiceName, s.Driver) + s.database()
	}
}

func (s Source) database() string {
	if s.Database == "" || s.ServiceName != "" {
		return ""
	}
	return "/" + s.Database
}

func (s Source) port(def int) int {
	if s.Port == 0 {
		return def
	}
	return s.Port
}

func (s Source) hostPort(def int) string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.port(def)))
}
