// Command dcmcp starts an MCP server exposing Salesforce Data Cloud to
// AI agents.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"

	"github.com/sfdc-tools/datacloud"
	"github.com/sfdc-tools/datacloud/ai"
	"github.com/sfdc-tools/datacloud/auth"
	"github.com/sfdc-tools/datacloud/internal/mcp"
	"github.com/sfdc-tools/datacloud/internal/network"
)

var build = "dev"

// secrets defines the names of the supported secret files that we load
// our secrets from.  Inexperienced windows users might have bad
// experience trying to create .env file with the notepad as it will
// battle for having the "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

// params is the command line parameters.
type params struct {
	username      string
	password      string
	securityToken string
	loginURL      string
	instanceURL   string
	apiVersion    string
	openaiKey     string

	transport  string
	listenAddr string

	apiConfig string
	retries   int

	logFile      string
	jsonLog      bool
	verbose      bool
	traceFile    string
	printVersion bool
}

func main() {
	loadSecrets(secrets)

	p, err := parseCmdLine(os.Args[1:])
	if err != nil {
		slog.Error("invalid parameters", "error", err)
		os.Exit(1)
	}
	if p.printVersion {
		fmt.Println(build)
		return
	}

	lg, closeLog, err := initLog(p.logFile, p.jsonLog, p.verbose)
	if err != nil {
		slog.Error("failed to initialise logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, lg, p); err != nil {
		lg.ErrorContext(ctx, "fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, lg *slog.Logger, p params) error {
	stopTrace := initTrace(p.traceFile)
	defer stopTrace()

	limits := network.DefLimits
	if p.apiConfig != "" {
		overrides, err := loadLimits(p.apiConfig)
		if err != nil {
			return fmt.Errorf("api config: %w", err)
		}
		if err := limits.Apply(overrides); err != nil {
			return fmt.Errorf("api config: %w", err)
		}
	}
	if p.retries > 0 {
		limits.Retries = p.retries
	}

	prov := &auth.PasswordAuth{
		Username:      p.username,
		Password:      p.password,
		SecurityToken: p.securityToken,
		LoginURL:      p.loginURL,
		APIVersion:    p.apiVersion,
		InstanceURL:   p.instanceURL,
	}
	sess, err := datacloud.New(ctx, prov,
		datacloud.WithLogger(lg),
		datacloud.WithLimits(limits),
		datacloud.WithAPIVersion(p.apiVersion),
	)
	if err != nil {
		return err
	}

	aicl := ai.New(p.openaiKey)
	if !aicl.Enabled() {
		lg.InfoContext(ctx, "OPENAI_API_KEY is not set, AI analysis tools will return a configuration error")
	}

	srv := mcp.New(sess.Client(), aicl, mcp.ConfigInfo{
		Username:   p.username,
		APIVersion: sess.Client().APIVersion(),
		Connected:  true,
	}, lg)

	switch mcp.Transport(p.transport) {
	case mcp.TransportStdio:
		return srv.ServeStdio(ctx)
	case mcp.TransportHTTP:
		return srv.ServeHTTP(ctx, p.listenAddr)
	default:
		return fmt.Errorf("unknown transport %q, must be %q or %q", p.transport, mcp.TransportStdio, mcp.TransportHTTP)
	}
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		godotenv.Load(f)
	}
}

// parseCmdLine parses the command line arguments.
func parseCmdLine(args []string) (params, error) {
	fs := flag.NewFlagSet("dcmcp", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			"dcmcp %s\n"+
				"MCP server for Salesforce Data Cloud: exposes query, metadata,\n"+
				"segmentation, activation and ingestion operations as MCP tools.\n\n"+
				"Usage:  %s [flags]\n\n",
			build, filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	var p params
	fs.StringVar(&p.username, "username", osenv.Secret("SALESFORCE_USERNAME", ""), "Salesforce `username`\n(environment: SALESFORCE_USERNAME)")
	fs.StringVar(&p.password, "password", osenv.Secret("SALESFORCE_PASSWORD", ""), "Salesforce `password`\n(environment: SALESFORCE_PASSWORD)")
	fs.StringVar(&p.securityToken, "security-token", osenv.Secret("SALESFORCE_SECURITY_TOKEN", ""), "Salesforce security `token`\n(environment: SALESFORCE_SECURITY_TOKEN)")
	fs.StringVar(&p.loginURL, "login-url", osenv.Value("SALESFORCE_LOGIN_URL", auth.DefLoginURL), "Salesforce login `URL` (use https://test.salesforce.com for sandboxes)")
	fs.StringVar(&p.instanceURL, "instance-url", osenv.Value("SALESFORCE_INSTANCE_URL", ""), "instance `URL` override (normally derived from the login response)")
	fs.StringVar(&p.apiVersion, "api-version", osenv.Value("SALESFORCE_API_VERSION", auth.DefAPIVersion), "Salesforce API `version`")
	fs.StringVar(&p.openaiKey, "openai-key", osenv.Secret("OPENAI_API_KEY", ""), "OpenAI API `key` for the AI analysis tools\n(environment: OPENAI_API_KEY)")

	fs.StringVar(&p.transport, "transport", "stdio", "MCP transport: \"stdio\" or \"http\"")
	fs.StringVar(&p.listenAddr, "listen", "127.0.0.1:8484", "address to listen on when -transport=http")

	fs.StringVar(&p.apiConfig, "api-config", osenv.Value("DCMCP_API_CONFIG", ""), "`path` to the API limits TOML file")
	fs.IntVar(&p.retries, "retries", 0, "number of attempts for idempotent API calls (0 = use limits file or default)")

	fs.StringVar(&p.logFile, "log", osenv.Value("LOG_FILE", ""), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&p.jsonLog, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.BoolVar(&p.verbose, "v", osenv.Value("DEBUG", false), "verbose messages")
	fs.StringVar(&p.traceFile, "trace", osenv.Value("TRACE_FILE", ""), "trace `file`")
	fs.BoolVar(&p.printVersion, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return p, err
	}
	return p, nil
}
