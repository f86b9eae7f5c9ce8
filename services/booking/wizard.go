package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servicehub/api"
	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

// Step is the wizard's explicit state. Transitions are linear in both
// directions; the only skip is a valid deep-link preselection from Service
// straight into Date.
type Step int

const (
	StepService Step = iota + 1
	StepDate
	StepTime
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "Service"
	case StepDate:
		return "Date"
	case StepTime:
		return "Time"
	case StepConfirm:
		return "Confirm"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Wizard accumulates a draft booking across the four steps and submits it at
// the confirmation boundary. Steps two and three block advancement locally,
// but the authoritative check is the aggregate validation run on submit.
type Wizard struct {
	API *api.Client

	step  Step
	draft models.DraftBooking

	// now is swapped in tests to pin the date lower bound.
	now func() time.Time
}

// NewWizard starts a fresh wizard at the service-selection step.
func NewWizard(client *api.Client) *Wizard {
	return &Wizard{
		API:   client,
		step:  StepService,
		draft: models.DraftBooking{PaymentMethod: "credit_card"},
		now:   time.Now,
	}
}

// Step returns the current wizard state.
func (w *Wizard) Step() Step { return w.step }

// Draft returns a copy of the accumulated draft.
func (w *Wizard) Draft() models.DraftBooking { return w.draft }

// SelectedService returns the catalog entry behind the draft, if any.
func (w *Wizard) SelectedService() (models.ServiceOption, bool) {
	return ServiceByID(w.draft.ServiceID)
}

// Preselect handles the deep-link service preselection. A valid id stores
// the service and short-circuits from Service directly into Date; an invalid
// id leaves the wizard untouched.
func (w *Wizard) Preselect(serviceID int) bool {
	if w.step != StepService {
		return false
	}
	if _, ok := ServiceByID(serviceID); !ok {
		return false
	}
	w.draft.ServiceID = serviceID
	w.step = StepDate
	return true
}

// SelectService stores the chosen service and advances to Date.
func (w *Wizard) SelectService(serviceID int) error {
	if _, ok := ServiceByID(serviceID); !ok {
		return fmt.Errorf("unknown service %d", serviceID)
	}
	w.draft.ServiceID = serviceID
	w.step = StepDate
	return nil
}

// SetDate stores the chosen date (YYYY-MM-DD). Advancing is Next's business.
func (w *Wizard) SetDate(date string) {
	w.draft.ServiceDate = strings.TrimSpace(date)
}

// SetAddress stores the service address collected on Confirm.
func (w *Wizard) SetAddress(address string) {
	w.draft.Address = address
}

// SetSpecialInstructions stores the optional free-text instructions.
func (w *Wizard) SetSpecialInstructions(instructions string) {
	w.draft.SpecialInstructions = instructions
}

// Next advances from Date to Time. It requires a non-empty date no earlier
// than today, mirroring the date input's minimum.
func (w *Wizard) Next() error {
	if w.step != StepDate {
		return fmt.Errorf("cannot advance from %s", w.step)
	}
	if w.draft.ServiceDate == "" {
		return ValidationErrors{"serviceDate": "Please select a date"}
	}
	if _, err := time.Parse("2006-01-02", w.draft.ServiceDate); err != nil {
		return ValidationErrors{"serviceDate": "Please select a valid date"}
	}
	today := w.now().Format("2006-01-02")
	if w.draft.ServiceDate < today {
		return ValidationErrors{"serviceDate": "Date cannot be in the past"}
	}
	w.step = StepTime
	return nil
}

// SelectTime stores one of the fixed slots and advances directly to Confirm.
func (w *Wizard) SelectTime(slot string) error {
	if !ValidTimeSlot(slot) {
		return fmt.Errorf("invalid time slot %q", slot)
	}
	w.draft.ServiceTime = slot
	w.step = StepConfirm
	return nil
}

// Back walks one step backwards; at Service it stays put.
func (w *Wizard) Back() {
	if w.step > StepService {
		w.step--
	}
}

// validate is the aggregate check over all required fields, run on submit.
func (w *Wizard) validate() ValidationErrors {
	errs := ValidationErrors{}
	if w.draft.ServiceID == 0 {
		errs["serviceId"] = "Please select a service"
	}
	if w.draft.ServiceDate == "" {
		errs["serviceDate"] = "Please select a date"
	}
	if w.draft.ServiceTime == "" {
		errs["serviceTime"] = "Please select a time"
	}
	if strings.TrimSpace(w.draft.Address) == "" {
		errs["address"] = "Address is required for booking"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Submit validates the whole draft, resolves a provider assignment and
// creates the booking. On success the wizard resets for the next booking; on
// failure it stays on Confirm with the draft intact.
func (w *Wizard) Submit(ctx context.Context) (*models.Booking, error) {
	if errs := w.validate(); errs != nil {
		return nil, errs
	}

	svc, ok := ServiceByID(w.draft.ServiceID)
	if !ok {
		w.step = StepService
		return nil, fmt.Errorf("selected service not found, please try again")
	}

	provider, err := fetchAndResolveProvider(ctx, w.API, svc)
	if err != nil {
		return nil, err
	}

	fragment, err := ConvertTo24Hour(w.draft.ServiceTime)
	if err != nil {
		return nil, ValidationErrors{"serviceTime": "Please select a time"}
	}
	datetime := w.draft.ServiceDate + "T" + fragment

	created, err := w.API.CreateBooking(ctx, api.CreateBookingInput{
		ProviderID:  provider.ID,
		ServiceType: svc.Profession,
		Address:     strings.TrimSpace(w.draft.Address),
		Date:        datetime,
	})
	if err != nil {
		utils.GetLogger().Warn("booking submission failed", zap.Error(err))
		return nil, err
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", created.ID),
		zap.String("serviceType", svc.Profession),
		zap.String("date", datetime))

	// The draft only lives for the wizard session.
	w.draft = models.DraftBooking{PaymentMethod: "credit_card"}
	w.step = StepService
	return created, nil
}
