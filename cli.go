package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/olekukonko/tablewriter"

	"github.com/Ambiki/faxage/client"
	"github.com/Ambiki/faxage/config"
	"github.com/Ambiki/faxage/model"
)

// Command holds the parsed command-line options
type Command struct {
	Auth    string // "username:company:password"
	URL     string
	Config  string
	JSON    bool
	Verbose bool

	// fax send
	To       string
	Name     string
	Files    []string
	Debug    bool
	Tag      string
	CallerID string

	// fax list
	List client.ListOptions

	// fax get
	ID  string
	Out string
	PDF bool

	// info auditlog
	From string
	Until string

	out io.Writer
}

// ParseArgs parses command-line arguments
func ParseArgs(args []string) (*Command, string, error) {
	if len(args) == 0 {
		return nil, "", fmt.Errorf("usage: faxage-cli <fax|info> <command> [options]")
	}

	cmd := &Command{out: os.Stdout}

	subcommand := args[0]
	for _, arg := range args[1:] {
		if !strings.HasPrefix(arg, "--") {
			return nil, "", fmt.Errorf("unexpected argument: %s", arg)
		}
		name, value, hasValue := strings.Cut(arg[2:], "=")

		var target *string
		switch name {
		case "json":
			cmd.JSON = true
		case "verbose":
			cmd.Verbose = true
		case "debug":
			cmd.Debug = true
		case "pdf":
			cmd.PDF = true
		case "starttime":
			cmd.List.StartTime = true
		case "filename":
			cmd.List.Filename = true
		case "pagecount":
			cmd.List.PageCount = true
		case "tsid":
			cmd.List.TSID = true
		case "file":
			if !hasValue || value == "" {
				return nil, "", fmt.Errorf("--file requires a value")
			}
			cmd.Files = append(cmd.Files, value)
		case "auth":
			target = &cmd.Auth
		case "url":
			target = &cmd.URL
		case "config":
			target = &cmd.Config
		case "to":
			target = &cmd.To
		case "name":
			target = &cmd.Name
		case "tag":
			target = &cmd.Tag
		case "callerid":
			target = &cmd.CallerID
		case "id":
			target = &cmd.ID
		case "out":
			target = &cmd.Out
		case "from":
			target = &cmd.From
		case "until":
			target = &cmd.Until
		default:
			return nil, "", fmt.Errorf("unknown option: %s", arg)
		}

		if target != nil {
			if !hasValue {
				return nil, "", fmt.Errorf("--%s requires a value", name)
			}
			*target = value
		}
	}

	return cmd, subcommand, nil
}

// parseAuth splits "username:company:password". The password may contain colons.
func parseAuth(auth string) (client.Credentials, error) {
	parts := strings.SplitN(auth, ":", 3)
	if len(parts) != 3 {
		return client.Credentials{}, fmt.Errorf("--auth must be username:company:password")
	}
	return client.Credentials{Username: parts[0], Company: parts[1], Password: parts[2]}, nil
}

// newClient builds the API client from config file, environment and flags
func (c *Command) newClient() (*client.Client, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	creds := client.Credentials{Username: cfg.Username, Company: cfg.Company, Password: cfg.Password}
	if c.Auth != "" {
		if creds, err = parseAuth(c.Auth); err != nil {
			return nil, err
		}
	}

	baseURL := cfg.BaseURL
	if c.URL != "" {
		baseURL = c.URL
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "faxage",
		Level:           level,
		ReportTimestamp: c.Verbose,
	})

	return client.New(&client.Options{
		Credentials: creds,
		BaseURL:     baseURL,
		Timeout:     cfg.Timeout,
		Logger:      logger,
	})
}

// SendFax reads the attachments and submits a fax
func (c *Command) SendFax(ctx context.Context) error {
	fax := model.OutgoingFax{
		RecipientName: c.Name,
		FaxNumber:     c.To,
		Debug:         c.Debug,
	}
	for _, path := range c.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		fax.Files = append(fax.Files, model.Attachment{
			Filename: filepath.Base(path),
			Data:     base64.StdEncoding.EncodeToString(data),
		})
	}

	api, err := c.newClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	result, err := api.Send.Send(ctx, fax, client.SendOptions{TagName: c.Tag, CallerID: c.CallerID})
	if err != nil {
		return fmt.Errorf("failed to send fax: %w", err)
	}

	if c.JSON {
		return c.outputJSON(result)
	}
	if result.Debug != "" {
		fmt.Fprintln(c.out, strings.TrimRight(result.Debug, "\n"))
	}
	fmt.Fprintf(c.out, "Job ID: %d\n", result.JobID)
	return nil
}

// ListFax lists received faxes
func (c *Command) ListFax(ctx context.Context) error {
	api, err := c.newClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	faxes, err := api.Receive.List(ctx, c.List)
	if err != nil {
		return fmt.Errorf("failed to list faxes: %w", err)
	}

	if c.JSON {
		return c.outputJSON(faxes)
	}
	return c.outputFaxTable(faxes)
}

// GetFax downloads a received fax image to c.Out
func (c *Command) GetFax(ctx context.Context) error {
	if c.Out == "" {
		return fmt.Errorf("--out is required")
	}

	api, err := c.newClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	data, err := api.Receive.Get(ctx, c.ID, client.GetOptions{PDF: c.PDF})
	if err != nil {
		return fmt.Errorf("failed to get fax: %w", err)
	}

	if err := os.WriteFile(c.Out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	fmt.Fprintf(c.out, "Saved fax %s to %s (%d bytes)\n", c.ID, c.Out, len(data))
	return nil
}

var infoCommands = map[string]bool{
	"handlecount":   true,
	"pendcount":     true,
	"incomingcalls": true,
	"qstatus":       true,
	"busycalls":     true,
	"portstatus":    true,
	"auditlog":      true,
}

// Info runs one of the account information operations
func (c *Command) Info(ctx context.Context, subcommand string) error {
	if !infoCommands[subcommand] {
		return fmt.Errorf("unknown info subcommand: %s", subcommand)
	}

	api, err := c.newClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	var (
		result interface{}
		header []string
		rows   [][]string
	)

	switch subcommand {
	case "handlecount":
		hc, err := api.Info.HandleCount(ctx)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", subcommand, err)
		}
		result = hc
		header = []string{"Total", "Handled"}
		rows = [][]string{{strconv.Itoa(hc.Total), strconv.Itoa(hc.Handled)}}
	case "pendcount":
		pc, err := api.Info.PendCount(ctx)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", subcommand, err)
		}
		result = pc
		header = []string{"Pending"}
		rows = [][]string{{strconv.Itoa(pc.Pending)}}
	case "incomingcalls":
		ic, err := api.Info.IncomingCalls(ctx)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", subcommand, err)
		}
		result = ic
		header = []string{"Incoming", "Allocated"}
		rows = [][]string{{strconv.Itoa(ic.Incoming), strconv.Itoa(ic.Allocated)}}
	case "qstatus":
		queue, err := api.Info.QueueStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", subcommand, err)
		}
		result = queue
		header = []string{"Job ID", "Caller ID", "Destination", "Line", "Pages"}
		for _, q := range queue {
			rows = append(rows, []string{strconv.Itoa(q.JobID), q.CallerID, q.Destination, strconv.Itoa(q.LineID), strconv.Itoa(q.PageCount)})
		}
	case "busycalls":
		calls, err := api.Info.BusyCalls(ctx)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", subcommand, err)
		}
		result = calls
		header = []string{"Called", "Calling", "Time"}
		for _, b := range calls {
			rows = append(rows, []string{b.Called, b.Calling, b.Time.Format("2006-01-02 15:04:05")})
		}
	case "portstatus":
		ports, err := api.Info.PortStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", subcommand, err)
		}
		result = ports
		header = []string{"Number", "Requested", "Due", "Completed", "Status", "Comment", "Complete"}
		for _, p := range ports {
			rows = append(rows, []string{p.Number, p.RequestDate, p.DueDate, p.CompleteDate, p.Status, truncate(p.Comment, 40), yesNo(p.Complete)})
		}
	case "auditlog":
		opts, err := c.auditLogOptions()
		if err != nil {
			return err
		}
		entries, err := api.Info.AuditLog(ctx, opts)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", subcommand, err)
		}
		result = entries
		header = []string{"ID", "Time", "Login", "IP", "Interface", "Operation", "Status"}
		for _, e := range entries {
			rows = append(rows, []string{e.AuditID, e.Timestamp, e.Login, e.IPAddress, e.Interface, e.Operation, e.OpStatus})
		}
	default:
		return fmt.Errorf("unknown info subcommand: %s", subcommand)
	}

	if c.JSON {
		return c.outputJSON(result)
	}
	c.outputTable(header, rows)
	return nil
}

func (c *Command) auditLogOptions() (client.AuditLogOptions, error) {
	var opts client.AuditLogOptions
	var err error
	if c.From != "" {
		if opts.StartDate, err = time.Parse("2006-01-02", c.From); err != nil {
			return opts, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if c.Until != "" {
		if opts.EndDate, err = time.Parse("2006-01-02", c.Until); err != nil {
			return opts, fmt.Errorf("invalid --until date: %w", err)
		}
	}
	return opts, nil
}

// outputFaxTable shows only the columns that were requested
func (c *Command) outputFaxTable(faxes []model.ReceivedFax) error {
	header := []string{"ID", "Received"}
	if c.List.StartTime {
		header = append(header, "Start")
	}
	header = append(header, "Caller ID", "DNIS")
	if c.List.Filename {
		header = append(header, "Filename")
	}
	if c.List.PageCount {
		header = append(header, "Pages")
	}
	if c.List.TSID {
		header = append(header, "TSID")
	}

	var rows [][]string
	for _, f := range faxes {
		row := []string{f.RecvID, f.RecvDate}
		if c.List.StartTime {
			row = append(row, f.StartTime)
		}
		row = append(row, f.CID, f.DNIS)
		if c.List.Filename {
			row = append(row, f.Filename)
		}
		if c.List.PageCount {
			row = append(row, f.PageCount)
		}
		if c.List.TSID {
			row = append(row, f.TSID)
		}
		rows = append(rows, row)
	}

	c.outputTable(header, rows)
	return nil
}

// outputTable formats rows as a markdown table
func (c *Command) outputTable(header []string, rows [][]string) {
	table := tablewriter.NewWriter(c.out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}

// outputJSON formats v as indented JSON
func (c *Command) outputJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(c.out, string(data))
	return nil
}

// truncate truncates a string to max length
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
