package services

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"crm/internal/apperrors"
	"crm/internal/models"
	"crm/internal/repositories"
)

// phonePattern allows an optional leading '+' followed by digits and hyphens.
var phonePattern = regexp.MustCompile(`^\+?\d[\d\-]+$`)

// NewValidator builds the validator shared by the customer paths, with
// the custom "phone" tag registered. Both createCustomer and
// bulkCreateCustomers enforce the same rules through it.
func NewValidator() *validator.Validate {
	v := validator.New()
	// The tag only runs on non-empty values; omitempty handles absence.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo     repositories.CustomerRepository
	validate *validator.Validate
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo:     repo,
		validate: NewValidator(),
	}
}

// CreateCustomer validates the input and inserts one customer. The email
// must be globally unique and the phone, when present, must match the
// phone pattern. Nothing is written when validation fails.
func (s *CustomerService) CreateCustomer(input models.CustomerInput) (*models.Customer, string, error) {
	exists, err := s.repo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, "", apperrors.ErrEmailExists
	}

	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return nil, "", apperrors.ErrInvalidPhone
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, "", err
	}

	customer := &models.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := s.repo.Create(customer); err != nil {
		return nil, "", err
	}
	return customer, "Customer created successfully!", nil
}

// BulkCreateCustomers processes each entry independently: one entry's
// failure is collected as an error string and never aborts the batch.
// It returns the created records and the collected errors in parallel;
// partial success is not an overall failure.
func (s *CustomerService) BulkCreateCustomers(inputs []models.CustomerInput) ([]models.Customer, []string) {
	created := make([]models.Customer, 0, len(inputs))
	errs := make([]string, 0)

	for _, input := range inputs {
		exists, err := s.repo.ExistsByEmail(input.Email)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", input.Email, err))
			continue
		}
		if exists {
			errs = append(errs, fmt.Sprintf("Email already exists: %s", input.Email))
			continue
		}

		if err := s.validate.Struct(input); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", input.Email, err))
			continue
		}

		customer := models.Customer{
			Name:  input.Name,
			Email: input.Email,
			Phone: input.Phone,
		}
		if err := s.repo.Create(&customer); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", input.Email, err))
			continue
		}
		created = append(created, customer)
	}

	return created, errs
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.repo.GetAll()
}

// ListCustomers retrieves customers matching the filter.
func (s *CustomerService) ListCustomers(filter repositories.CustomerFilter) ([]models.Customer, error) {
	return s.repo.List(filter)
}
