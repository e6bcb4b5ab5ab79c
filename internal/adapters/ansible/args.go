package ansible

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/networker-service/internal/domain"
	"github.com/jsamuelsen/networker-service/internal/platform/config"
)

// moduleArgsKey wraps the arguments in files written by newer Ansible releases.
const moduleArgsKey = "ANSIBLE_MODULE_ARGS"

// ErrInvalidArgs is returned when module arguments cannot be read or fail validation.
var ErrInvalidArgs = errors.New("invalid module arguments")

var validate = newValidator()

// credentialKeys are the only options that fall back to NETWORKER_* variables.
var credentialKeys = []string{"hostname", "username", "password"}

// ConnectionArgs are the options shared by every Networker module.
// Hostname, username and password fall back to NETWORKER_HOSTNAME,
// NETWORKER_USERNAME and NETWORKER_PASSWORD.
type ConnectionArgs struct {
	Hostname      string `koanf:"hostname"`
	Username      string `koanf:"username"`
	Password      string `koanf:"password"`
	ValidateCerts bool   `koanf:"validate_certs"`
}

// RefreshArgs are the options of networker_vcenter_refresh.
type RefreshArgs struct {
	ConnectionArgs `koanf:",squash"`

	// WaitFor is the number of seconds to wait after a successful refresh.
	WaitFor int `koanf:"wait_for" validate:"min=0"`
}

// VMArgs are the options of networker_vcenter_vm.
type VMArgs struct {
	ConnectionArgs `koanf:",squash"`

	VCenter         string   `koanf:"vcenter"          validate:"required"`
	VMNames         []string `koanf:"vm_names"         validate:"required,min=1,dive,required"`
	ProtectionGroup string   `koanf:"protection_group" validate:"required"`
	State           string   `koanf:"state"            validate:"oneof=present absent"`
}

// Mode maps the desired state onto a membership change mode.
func (a *VMArgs) Mode() (domain.Mode, error) {
	return domain.ModeFromState(a.State)
}

func connectionDefaults() map[string]any {
	return map[string]any{
		"validate_certs": true,
	}
}

func refreshDefaults() map[string]any {
	d := connectionDefaults()
	d["wait_for"] = 0

	return d
}

func vmDefaults() map[string]any {
	d := connectionDefaults()
	d["state"] = domain.StatePresent

	return d
}

// LoadRefreshArgs reads networker_vcenter_refresh arguments from path.
func LoadRefreshArgs(path string) (*RefreshArgs, error) {
	var args RefreshArgs
	if err := loadArgs(path, refreshDefaults(), &args); err != nil {
		return nil, err
	}

	return &args, nil
}

// LoadVMArgs reads networker_vcenter_vm arguments from path.
func LoadVMArgs(path string) (*VMArgs, error) {
	var args VMArgs
	if err := loadArgs(path, vmDefaults(), &args); err != nil {
		return nil, err
	}

	return &args, nil
}

// loadArgs layers defaults, NETWORKER_* credentials and the arguments file,
// then unmarshals and validates the result into out.
// Arguments set to null in the file do not hide the environment fallback.
func loadArgs(path string, defaults map[string]any, out any) error {
	if path == "" {
		return fmt.Errorf("%w: no arguments file given", ErrInvalidArgs)
	}

	raw := koanf.New(".")

	// JSON is valid YAML, so one parser covers both argument file formats.
	if err := raw.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrInvalidArgs, path, err)
	}

	if raw.Exists(moduleArgsKey) {
		raw = raw.Cut(moduleArgsKey)
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return fmt.Errorf("%w: loading defaults: %w", ErrInvalidArgs, err)
	}

	if err := k.Load(config.NetworkerEnvProvider("", credentialKeys...), nil); err != nil {
		return fmt.Errorf("%w: loading environment: %w", ErrInvalidArgs, err)
	}

	if err := k.Load(confmap.Provider(withoutNulls(raw.Raw()), "."), nil); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	// Ansible list options also accept a comma separated string.
	if s, ok := k.Get("vm_names").(string); ok {
		if err := k.Set("vm_names", splitList(s)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
	}

	if err := k.Unmarshal("", out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	if err := validate.Struct(out); err != nil {
		return formatValidationErrors(err)
	}

	return nil
}

func withoutNulls(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = v
		}
	}

	return out
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// newValidator reports fields by their option names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
		return name
	})

	return v
}

// formatValidationErrors renders validator errors the way Ansible reports
// argument problems.
func formatValidationErrors(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	var missing, other []string

	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "oneof":
			other = append(other, fmt.Sprintf("value of %s must be one of: %s, got: %v",
				fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value()))
		case "min":
			other = append(other, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			other = append(other, fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag()))
		}
	}

	if len(missing) > 0 {
		other = append([]string{"missing required arguments: " + strings.Join(missing, ", ")}, other...)
	}

	return fmt.Errorf("%w: %s", ErrInvalidArgs, strings.Join(other, "; "))
}
