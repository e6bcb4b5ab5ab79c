// Package ansible runs Networker operations as Ansible binary modules.
//
// A binary module receives the path of a JSON arguments file as its only
// argument and prints a single JSON result document on stdout:
//
//	{"json": {...}, "changed": true}
//	{"json": {}, "failed": true, "msg": "...", "changed": false}
//
// Logs go to stderr so they never corrupt the result document.
package ansible

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/jsamuelsen/networker-service/internal/adapters/clients"
	"github.com/jsamuelsen/networker-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/networker-service/internal/app"
	"github.com/jsamuelsen/networker-service/internal/domain"
)

// Exit codes reported to Ansible.
const (
	ExitOK     = 0
	ExitFailed = 1
)

// Result is the document a module prints on stdout.
type Result struct {
	JSON    any    `json:"json"`
	Changed bool   `json:"changed"`
	Failed  bool   `json:"failed,omitempty"`
	Msg     string `json:"msg,omitempty"`
}

// Module executes a single module invocation.
type Module struct {
	// Stdout receives the result document.
	Stdout io.Writer

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Clock is used for the post-refresh wait. Defaults to the real clock.
	Clock clock.Clock

	// Timeout bounds each Networker request. Zero uses the client default.
	Timeout time.Duration
}

// RunRefresh runs networker_vcenter_refresh with the arguments in argsPath
// and returns the process exit code.
func (m *Module) RunRefresh(ctx context.Context, argsPath string) int {
	args, err := LoadRefreshArgs(argsPath)
	if err != nil {
		return m.fail(err)
	}

	svc, err := m.newService(&args.ConnectionArgs)
	if err != nil {
		return m.fail(err)
	}

	body, err := svc.RefreshVCenters(ctx, time.Duration(args.WaitFor)*time.Second)
	if err != nil {
		return m.fail(err)
	}

	if body == nil {
		body = map[string]any{}
	}

	return m.exit(Result{JSON: body, Changed: false})
}

// RunVM runs networker_vcenter_vm with the arguments in argsPath
// and returns the process exit code.
func (m *Module) RunVM(ctx context.Context, argsPath string) int {
	args, err := LoadVMArgs(argsPath)
	if err != nil {
		return m.fail(err)
	}

	mode, err := args.Mode()
	if err != nil {
		return m.fail(err)
	}

	svc, err := m.newService(&args.ConnectionArgs)
	if err != nil {
		return m.fail(err)
	}

	change, err := svc.UpdateProtectionGroup(ctx, app.UpdateRequest{
		VMNames:         args.VMNames,
		Mode:            mode,
		ProtectionGroup: args.ProtectionGroup,
		VCenter:         args.VCenter,
	})
	if err != nil {
		return m.fail(err)
	}

	return m.exit(Result{JSON: change, Changed: change.Changed()})
}

func (m *Module) newService(conn *ConnectionArgs) (*app.ProtectionService, error) {
	logger := m.logger()

	client, err := clients.New(&clients.Config{
		Hostname:           conn.Hostname,
		Username:           conn.Username,
		Password:           conn.Password,
		InsecureSkipVerify: !conn.ValidateCerts,
		Timeout:            m.Timeout,
		Logger:             logger,
	})
	if err != nil {
		return nil, err
	}

	return app.NewProtectionService(app.ProtectionServiceConfig{
		Client: acl.NewNetworkerClient(acl.NetworkerClientConfig{
			Client: client,
			Logger: logger,
		}),
		Clock:  m.Clock,
		Logger: logger,
	}), nil
}

func (m *Module) exit(result Result) int {
	if err := json.NewEncoder(m.Stdout).Encode(result); err != nil {
		m.logger().Error("writing module result", slog.Any("error", err))
		return ExitFailed
	}

	return ExitOK
}

func (m *Module) fail(err error) int {
	m.logger().Error("module failed", slog.Any("error", err))

	result := Result{
		JSON:    map[string]any{},
		Changed: false,
		Failed:  true,
		Msg:     failureMessage(err),
	}

	if encErr := json.NewEncoder(m.Stdout).Encode(result); encErr != nil {
		m.logger().Error("writing module result", slog.Any("error", encErr))
	}

	return ExitFailed
}

// failureMessage reports Networker errors by their own message and
// everything else by its full text.
func failureMessage(err error) string {
	if _, ok := domain.KindOf(err); ok {
		return domain.MessageOf(err)
	}

	return fmt.Sprint(err)
}

func (m *Module) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}

	return m.Logger
}
