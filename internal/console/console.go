// Package console is the interactive numbered-menu front end.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/i474232898/arca/internal/alert"
	"github.com/i474232898/arca/internal/arca"
	"github.com/i474232898/arca/internal/geo"
	"github.com/i474232898/arca/internal/support"
	"github.com/i474232898/arca/internal/user"
)

// Service is the subset of arca.Service the console drives.
type Service interface {
	Users() []user.User
	User(id int) (user.User, error)
	UpdateProfile(id int, upd arca.ProfileUpdate) (user.User, error)
	Region(ctx context.Context, userID int) (geo.Region, error)
	LiveAlerts(ctx context.Context, userID int) (arca.AlertReport, error)
	SimulatedAlert(ctx context.Context, userID int) (arca.AlertReport, error)
	History(ctx context.Context, userID int) ([]alert.Alert, error)
	NearbySupportPoints(userID int) (support.Report, error)
	SupportPoint(userID, pointID int) (support.Point, error)
	AllSupportPoints(userID int) ([]support.Point, error)
	RegisterSupportPoint(r support.Registration) (support.Point, error)
	ApproveSupportPoint(userID, pointID int) (support.Point, error)
	Hydration(ctx context.Context, userID int, weightKg float64) (arca.HydrationReport, error)
}

// errQuit ends the session when input is exhausted.
var errQuit = errors.New("input closed")

// Console reads choices from in and writes menus to out.
type Console struct {
	svc     Service
	in      *bufio.Scanner
	out     io.Writer
	current user.User
}

// New creates a console logged in as the user with id initialUserID.
func New(svc Service, in io.Reader, out io.Writer, initialUserID int) (*Console, error) {
	u, err := svc.User(initialUserID)
	if err != nil {
		return nil, err
	}
	return &Console{svc: svc, in: bufio.NewScanner(in), out: out, current: u}, nil
}

// Run shows the main menu until the user exits or input ends. Failures inside
// a menu are reported and the main menu is shown again.
func (c *Console) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.printf("\nLogged in as: %s (%s)\n", c.current.Name, c.current.Role)
		c.printf("\n~~~~ ARCA - Main Menu ~~~~\n")
		c.printf("1 - Users\n2 - Alerts\n3 - Support Points\n4 - Alert History\n5 - Hydration Calculator\n0 - Exit\n")

		choice, err := c.readChoice("\nChoose an option: ", 0, 5)
		if err != nil {
			return nil
		}
		if choice == 0 {
			c.printf("Goodbye.\n")
			return nil
		}

		if err := c.dispatch(ctx, choice); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			c.printf("Error: %v\n", err)
		}
	}
}

func (c *Console) dispatch(ctx context.Context, choice int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("console menu failed")
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	switch choice {
	case 1:
		return c.usersMenu()
	case 2:
		return c.alertsMenu(ctx)
	case 3:
		return c.supportMenu()
	case 4:
		return c.historyMenu(ctx)
	case 5:
		return c.hydrationMenu(ctx)
	}
	return nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		return "", errQuit
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readInt re-prompts until the input is a decimal whole number. Leading
// zeros are ignored, so "010" is 10.
func (c *Console) readInt(prompt string) (int, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		c.printf("Please enter a valid number.\n")
	}
}

// readChoice re-prompts until the input is a number in [lo, hi].
func (c *Console) readChoice(prompt string, lo, hi int) (int, error) {
	for {
		n, err := c.readInt(prompt)
		if err != nil {
			return 0, err
		}
		if n >= lo && n <= hi {
			return n, nil
		}
		c.printf("Invalid option. Choose between %d and %d.\n", lo, hi)
	}
}

// readFloat re-prompts until the input is a number.
func (c *Console) readFloat(prompt string) (float64, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		f, err := cast.ToFloat64E(strings.Replace(line, ",", ".", 1))
		if err == nil && line != "" {
			return f, nil
		}
		c.printf("Please enter a valid number.\n")
	}
}
