package lineparse

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

const haproxyTime = "02/Jan/2006:15:04:05.000"

type logRow struct {
	CreationDate    time.Time
	ClientIP        string
	FrontEnd        string
	BackEnd         string
	Server          string
	Tq              *int32
	Tw              *int32
	Tc              *int32
	Tr              *int32
	Tt              *int32
	ResponseCode    int16
	Bytes           *int32
	TermState       string
	ActConn         *int32
	FeConn          *int32
	BeConn          *int32
	SrvConn         *int32
	Retries         *int32
	SrvQueue        *int32
	BackEndQueue    *int32
	Referer         string
	UserAgent       string
	Host            string
	ForwardFor      string
	AcceptEncoding  string
	ContentEncoding string
	IsPageView      bool
	SqlDurationMs   *int16
	AccountID       *int32
	RouteName       string
	Method          string
	URI             string
	HTTPVersion     string
}

func haproxyBuilder(onFailure func(string, *logRow)) *Builder[logRow] {
	return New[logRow]().
		Until(" ").
		Take(":", "ClientIP").
		Until("[").
		Take("]", "CreationDate", haproxyTime).
		Until(" ").
		Take(" ", "FrontEnd").
		Take("/", "BackEnd").
		Take(" ", "Server").
		Take("/", "Tq").
		Take("/", "Tw").
		Take("/", "Tc").
		Take("/", "Tr").
		Take(" ", "Tt").
		Take(" ", "ResponseCode").
		Take(" ", "Bytes").
		Until("- - ").
		TakeN(4, "TermState").
		Skip(1).
		Take("/", "ActConn").
		Take("/", "FeConn").
		Take("/", "BeConn").
		Take("/", "SrvConn").
		Take(" ", "Retries").
		Take("/", "SrvQueue").
		Take(" ", "BackEndQueue").
		Until("{").
		Take("|", "Referer").
		Take("|", "UserAgent").
		Take("|", "Host").
		Take("|", "ForwardFor").
		Take("}", "AcceptEncoding").
		Until("{").
		Take("|", "ContentEncoding").
		Take("|", "IsPageView").
		Take("|", "SqlDurationMs").
		Take("|", "AccountID").
		Take("}", "RouteName").
		Until(`"`).
		Take(" ", "Method").
		Take(" ", "URI").
		Take(`"`, "HTTPVersion").
		Else(onFailure)
}

var haproxyRegexp = regexp.MustCompile(strings.Join([]string{
	`(?P<ClientIP>\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b):\d+\s`,
	`\[(?P<CreationDate>[^\]]*)\]\s`,
	`(?P<FrontEnd>[^\s]+)\s`,
	`(?P<BackEnd>[^\s]+)/(?P<Server>[0-9a-z<>-]+)\s`,
	`(?P<Tq>[^/]+)/(?P<Tw>[^/]+)/(?P<Tc>[^/]+)/(?P<Tr>[^/]+)/(?P<Tt>[^\s]+)\s`,
	`(?P<ResponseCode>[0-9-]+)\s`,
	`(?P<Bytes>\d+)\s`,
	`-\s-\s`,
	`(?P<TermState>.{4})\s`,
	`(?P<ActConn>[^/]+)/(?P<FeConn>[^/]+)/(?P<BeConn>[^/]+)/(?P<SrvConn>[^/]+)/(?P<Retries>[^\s]+)\s`,
	`(?P<SrvQueue>\d+)/(?P<BackEndQueue>\d+)\s`,
	`\{(?P<Referer>[^|]+)?\|(?P<UserAgent>[^|]+)?\|(?P<Host>[^|]+)?\|(?P<ForwardFor>[^|}]+)?\|?(?P<AcceptEncoding>[^}]+)?\}\s`,
	`(?:\{(?P<ContentEncoding>[^|]+)?\|(?P<IsPageView>[^|]+)?\|(?P<SqlDurationMs>[^|]+)?\|(?P<AccountID>[^|]+)?\|(?P<RouteName>[^}]+)?\}\s)?`,
	`"(?P<Method>\w+)\s(?P<URI>[^\s]*)(?:\s(?P<HTTPVersion>HTTP/1\.\d))?"`,
}, ""))

// parseWithRegexp is the reference parser the sealed plan is checked against.
func parseWithRegexp(line string) (logRow, error) {
	var row logRow
	m := haproxyRegexp.FindStringSubmatch(line)
	if m == nil {
		return row, nil
	}

	i32 := func(s string) (*int32, error) {
		v, err := strconv.ParseInt(s, 10, 32)
		n := int32(v)
		return &n, err
	}
	i16 := func(s string) (*int16, error) {
		v, err := strconv.ParseInt(s, 10, 16)
		n := int16(v)
		return &n, err
	}

	for i, name := range haproxyRegexp.SubexpNames() {
		v := m[i]
		if i == 0 || v == "" {
			continue
		}

		var err error
		switch name {
		case "ClientIP":
			row.ClientIP = v
		case "CreationDate":
			row.CreationDate, err = time.Parse(haproxyTime, v)
		case "FrontEnd":
			row.FrontEnd = v
		case "BackEnd":
			row.BackEnd = v
		case "Server":
			row.Server = v
		case "Tq":
			row.Tq, err = i32(v)
		case "Tw":
			row.Tw, err = i32(v)
		case "Tc":
			row.Tc, err = i32(v)
		case "Tr":
			row.Tr, err = i32(v)
		case "Tt":
			row.Tt, err = i32(v)
		case "ResponseCode":
			var code *int16
			if code, err = i16(v); err == nil {
				row.ResponseCode = *code
			}
		case "Bytes":
			row.Bytes, err = i32(v)
		case "TermState":
			row.TermState = v
		case "ActConn":
			row.ActConn, err = i32(v)
		case "FeConn":
			row.FeConn, err = i32(v)
		case "BeConn":
			row.BeConn, err = i32(v)
		case "SrvConn":
			row.SrvConn, err = i32(v)
		case "Retries":
			row.Retries, err = i32(v)
		case "SrvQueue":
			row.SrvQueue, err = i32(v)
		case "BackEndQueue":
			row.BackEndQueue, err = i32(v)
		case "Referer":
			row.Referer = v
		case "UserAgent":
			row.UserAgent = v
		case "Host":
			row.Host = v
		case "ForwardFor":
			row.ForwardFor = v
		case "AcceptEncoding":
			row.AcceptEncoding = v
		case "ContentEncoding":
			row.ContentEncoding = v
		case "IsPageView":
			row.IsPageView = v == "1"
		case "SqlDurationMs":
			row.SqlDurationMs, err = i16(v)
		case "AccountID":
			row.AccountID, err = i32(v)
		case "RouteName":
			row.RouteName = v
		case "Method":
			row.Method = v
		case "URI":
			row.URI = v
		case "HTTPVersion":
			row.HTTPVersion = v
		}
		if err != nil {
			return row, err
		}
	}
	return row, nil
}

func readLines(tb testing.TB, path string) []string {
	tb.Helper()
	f, err := os.Open(path)
	if err != nil {
		tb.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if sc.Text() != "" {
			lines = append(lines, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	return lines
}
