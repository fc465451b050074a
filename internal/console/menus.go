package console

import (
	"context"
	"errors"

	"github.com/i474232898/arca/internal/alert"
	"github.com/i474232898/arca/internal/arca"
	"github.com/i474232898/arca/internal/store"
	"github.com/i474232898/arca/internal/support"
	"github.com/i474232898/arca/internal/user"
)

func (c *Console) usersMenu() error {
	for {
		c.printf("\n~~~~ Users ~~~~\n")
		c.printf("1 - View my profile\n2 - Edit my profile\n3 - List registered users\n4 - Switch user\n0 - Back\n")
		choice, err := c.readChoice("\nChoose an option: ", 0, 4)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			return nil
		case 1:
			c.printUser(c.current)
		case 2:
			if err := c.editProfile(); err != nil {
				return err
			}
		case 3:
			if err := c.userDetails(); err != nil {
				return err
			}
		case 4:
			if err := c.switchUser(); err != nil {
				return err
			}
		}
	}
}

func (c *Console) printUser(u user.User) {
	c.printf("\nName: %s\nTax ID: %s\nEmail: %s\nPhone: %s\nAge: %d\nRole: %s\n",
		u.Name, u.TaxID, u.Email, u.Phone, u.Age, u.Role)
}

func (c *Console) editProfile() error {
	c.printf("1 - Email\n2 - Phone\n0 - Cancel\n")
	choice, err := c.readChoice("\nWhich field? ", 0, 2)
	if err != nil || choice == 0 {
		return err
	}

	value, err := c.readLine("New value: ")
	if err != nil {
		return err
	}
	var upd arca.ProfileUpdate
	if choice == 1 {
		upd.Email = &value
	} else {
		upd.Phone = &value
	}

	u, err := c.svc.UpdateProfile(c.current.ID, upd)
	if err != nil {
		c.printf("Profile not updated: %v\n", err)
		return nil
	}
	c.current = u
	c.printf("Profile updated.\n")
	return nil
}

func (c *Console) userDetails() error {
	for _, u := range c.svc.Users() {
		c.printf("[%d] %s (%s)\n", u.ID, u.Name, u.Role)
	}
	for {
		id, err := c.readInt("\nEnter a user id for details (0 to go back): ")
		if err != nil || id == 0 {
			return err
		}
		u, err := c.svc.User(id)
		if errors.Is(err, store.ErrNotFound) {
			c.printf("User not found.\n")
			continue
		}
		if err != nil {
			return err
		}
		c.printUser(u)
		return nil
	}
}

func (c *Console) switchUser() error {
	for _, u := range c.svc.Users() {
		c.printf("[%d] %s (%s)\n", u.ID, u.Name, u.Role)
	}
	for {
		id, err := c.readInt("\nUser id: ")
		if err != nil {
			return err
		}
		u, err := c.svc.User(id)
		if errors.Is(err, store.ErrNotFound) {
			c.printf("User not found.\n")
			continue
		}
		if err != nil {
			return err
		}
		c.current = u
		c.printf("Now logged in as %s.\n", u.Name)
		return nil
	}
}

func (c *Console) alertsMenu(ctx context.Context) error {
	c.printf("\n~~~~ Alerts ~~~~\n1 - Live alerts\n2 - Simulated alerts (demo)\n")
	choice, err := c.readChoice("\nChoose 1 or 2: ", 1, 2)
	if err != nil {
		return err
	}

	var report arca.AlertReport
	if choice == 1 {
		report, err = c.svc.LiveAlerts(ctx, c.current.ID)
	} else {
		report, err = c.svc.SimulatedAlert(ctx, c.current.ID)
	}
	if err != nil {
		return err
	}

	c.printf("\nAlerts for %s, %s\n\n", report.Region.Neighborhood, report.Region.City)
	if !report.WeatherAvailable {
		c.printf("Weather service unavailable; no alerts can be derived right now.\n")
		return nil
	}
	if len(report.Alerts) == 0 {
		c.printf("No alerts for your region.\n")
		return nil
	}
	for _, a := range report.Alerts {
		c.printAlert(a)
	}
	return nil
}

func (c *Console) printAlert(a alert.Alert) {
	c.printf("Issued at: %s\n%s - %s\nLocation: %s, %s\n%s\n\n",
		a.IssuedAtText(), a.Type, a.Severity, a.Neighborhood, a.City, a.Description)
}

func (c *Console) historyMenu(ctx context.Context) error {
	history, err := c.svc.History(ctx, c.current.ID)
	if err != nil {
		return err
	}
	c.printf("\n~~~~ Alert History ~~~~\n")
	if len(history) == 0 {
		c.printf("No alerts recorded.\n")
		return nil
	}
	for _, a := range history {
		c.printAlert(a)
	}
	return nil
}

func (c *Console) supportMenu() error {
	for {
		c.printf("\n~~~~ Support Points ~~~~\n")
		c.printf("1 - Nearby support points\n2 - Register a support point\n")
		max := 2
		if c.current.Role.IsAdmin() {
			c.printf("3 - All support points\n4 - Approve a support point\n")
			max = 4
		}
		c.printf("0 - Back\n")

		choice, err := c.readChoice("\nChoose an option: ", 0, max)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			return nil
		case 1:
			err = c.nearby()
		case 2:
			err = c.register()
		case 3:
			err = c.listAll()
		case 4:
			err = c.approve()
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) nearby() error {
	report, err := c.svc.NearbySupportPoints(c.current.ID)
	if err != nil {
		return err
	}

	c.printf("\nWithin %.0f km:\n", support.NearLimitKm)
	c.printBand(report.Near)
	c.printf("\nWithin %.0f km:\n", support.FarLimitKm)
	c.printBand(report.Far)
	if len(report.VisibleIDs) == 0 {
		return nil
	}

	id, err := c.readInt("\nEnter a support point id for details (0 to go back): ")
	if err != nil || id == 0 {
		return err
	}
	p, err := c.svc.SupportPoint(c.current.ID, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.printf("Support point not found.\n")
		return nil
	case errors.Is(err, arca.ErrRestricted):
		c.printf("Restricted: only administrators can see pending support points.\n")
		return nil
	case err != nil:
		return err
	}
	c.printPoint(p)
	return nil
}

func (c *Console) printBand(band []support.Nearby) {
	if len(band) == 0 {
		c.printf("  none\n")
		return
	}
	for _, n := range band {
		c.printf("  [%d] %s - %.1f km\n", n.ID, n.Name, n.DistanceKm)
	}
}

func (c *Console) printPoint(p support.Point) {
	c.printf("\nName: %s\nAddress: %s, %s\nCity: %s - %s, %s\nCapacity: %d people\nPhone: %s\nStatus: %s\nNotes: %s\n",
		p.Name, p.Street, p.Neighborhood, p.City, p.State, p.Country, p.Capacity, p.Phone, p.Status, p.Notes)
}

func (c *Console) register() error {
	var r support.Registration
	fields := []struct {
		prompt string
		field  string
		dst    *string
	}{
		{"Name: ", "Name", &r.Name},
		{"Neighborhood: ", "Neighborhood", &r.Neighborhood},
		{"Street: ", "Street", &r.Street},
		{"City: ", "City", &r.City},
		{"State: ", "State", &r.State},
		{"Country: ", "Country", &r.Country},
		{"Phone: ", "Phone", &r.Phone},
	}
	for _, f := range fields {
		for {
			v, err := c.readLine(f.prompt)
			if err != nil {
				return err
			}
			*f.dst = v
			if err := r.ValidateField(f.field); err != nil {
				c.printf("Invalid %s\n", err)
				continue
			}
			break
		}
	}

	for {
		raw, err := c.readLine("Capacity: ")
		if err != nil {
			return err
		}
		capacity, err := support.ParseCapacity(raw)
		if err == nil {
			r.Capacity = capacity
			break
		}
		c.printf("%v\n", err)
	}

	coords := []struct {
		prompt string
		field  string
		dst    **float64
	}{
		{"Latitude: ", "Lat", &r.Lat},
		{"Longitude: ", "Lon", &r.Lon},
	}
	for _, f := range coords {
		for {
			v, err := c.readFloat(f.prompt)
			if err != nil {
				return err
			}
			*f.dst = support.Coord(v)
			if err := r.ValidateField(f.field); err != nil {
				c.printf("Invalid %s\n", err)
				continue
			}
			break
		}
	}

	var err error
	if r.Notes, err = c.readLine("Notes (optional): "); err != nil {
		return err
	}

	p, err := c.svc.RegisterSupportPoint(r)
	var verrs support.ValidationErrors
	if errors.As(err, &verrs) {
		c.printf("Support point not registered:\n")
		for _, fe := range verrs {
			c.printf("  %s: %s\n", fe.Field, fe.Message)
		}
		return nil
	}
	if err != nil {
		return err
	}
	c.printf("Support point %d registered and awaiting approval.\n", p.ID)
	return nil
}

func (c *Console) listAll() error {
	points, err := c.svc.AllSupportPoints(c.current.ID)
	if err != nil {
		return err
	}
	for _, p := range points {
		c.printf("[%d] %s - %s (%s)\n", p.ID, p.Name, p.City, p.Status)
	}
	return nil
}

func (c *Console) approve() error {
	id, err := c.readInt("Support point id to approve: ")
	if err != nil {
		return err
	}
	p, err := c.svc.ApproveSupportPoint(c.current.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		c.printf("Support point not found.\n")
		return nil
	}
	if err != nil {
		return err
	}
	c.printf("Support point %d is now %s.\n", p.ID, p.Status)
	return nil
}

func (c *Console) hydrationMenu(ctx context.Context) error {
	c.printf("\n~~~~ Hydration Calculator ~~~~\n")
	for {
		weight, err := c.readFloat("Your weight (kg): ")
		if err != nil {
			return err
		}
		report, err := c.svc.Hydration(ctx, c.current.ID, weight)
		if err != nil {
			c.printf("%v\n", err)
			continue
		}
		if report.FallbackTemperature {
			c.printf("Weather service unavailable; assuming %.1f °C.\n", report.TemperatureC)
		} else {
			c.printf("Current temperature: %.1f °C\n", report.TemperatureC)
		}
		c.printf("Recommendation: drink about %.2f liters of water today.\n", report.Liters)
		return nil
	}
}
