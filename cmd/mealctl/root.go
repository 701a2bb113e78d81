package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/mealmate/backend/internal/client"
	"github.com/pageza/mealmate/backend/internal/settings"
	"github.com/pageza/mealmate/backend/internal/types"
)

const (
	envPrefix      = "MEALCTL"
	configFileName = ".mealctl"
	defaultServer  = "http://localhost:8080"
)

// options are read from flags, MEALCTL_* variables and ~/.mealctl.yaml, in that order of precedence
type options struct {
	Server  string        `mapstructure:"server"`
	Token   string        `mapstructure:"token"`
	User    string        `mapstructure:"user"`
	Timeout time.Duration `mapstructure:"timeout"`
	Verbose bool          `mapstructure:"verbose"`
}

// app holds what every subcommand needs once the root command has run
type app struct {
	v       *viper.Viper
	cfgFile string
	opts    options
	log     *zap.Logger
	api     *client.Client
	bridge  *settings.Bridge
	userID  string
	now     func() time.Time
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v, now: time.Now}

	root := &cobra.Command{
		Use:           "mealctl",
		Short:         "Plan meals and shopping from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.mealctl.yaml)")
	flags.String("server", defaultServer, "mealmate service base URL")
	flags.String("token", "", "bearer token issued by the identity provider")
	flags.String("user", "", "user id, taken from the token when empty")
	flags.Duration("timeout", 10*time.Second, "request timeout")
	flags.BoolP("verbose", "v", false, "log requests at debug level")
	for _, name := range []string{"server", "token", "user", "timeout", "verbose"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.mealsCmd(),
		a.plansCmd(),
		a.shoppingCmd(),
		a.checkCmd(),
		a.settingsCmd(),
		a.categoriesCmd(),
		a.tagsCmd(),
		a.contactsCmd(),
		a.dashboardCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	log := newLogger(a.opts.Verbose, cmd.ErrOrStderr())
	a.log = log

	var err error
	a.api, err = client.New(client.Config{
		BaseURL: a.opts.Server,
		Token:   a.opts.Token,
		Timeout: a.opts.Timeout,
	}, client.WithLogger(log))
	if err != nil {
		return err
	}
	a.bridge = settings.NewBridge(a.api, log)

	a.userID = a.opts.User
	if a.userID == "" {
		a.userID = userFromToken(a.opts.Token)
	}
	if a.userID == "" {
		return errors.New("no user: pass --user or a token carrying user_id")
	}
	return nil
}

func (a *app) loadConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(expandHome(a.cfgFile))
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigName(configFileName)
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.opts); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// newLogger writes human readable entries to w, warnings and above unless verbose
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// userFromToken reads user_id without verifying the signature; the service does that
func userFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := &types.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	return claims.SubjectID()
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// today is the local calendar day expressed in UTC, where plan dates live
func (a *app) today() time.Time {
	n := a.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 12, 0, 0, 0, time.UTC)
}
