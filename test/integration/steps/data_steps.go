package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

const defaultPassword = "Sup3rSecret!"

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password)
}

func (t *testContext) createUser(email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		Username:     strings.Split(email, "@")[0],
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := t.db.DbConn.Create(user).Error; err != nil {
		return err
	}

	t.currentUserID = user.ID
	return nil
}

// iAmLoggedInAs creates the user when missing and logs in through the API so
// the tokens are issued exactly as a client would receive them.
func (t *testContext) iAmLoggedInAs(email string) error {
	var count int64
	if err := t.db.DbConn.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := t.createUser(email, defaultPassword); err != nil {
			return err
		}
	}

	t.accessToken = ""
	payload := fmt.Sprintf(`{"email": %q, "password": %q}`, email, defaultPassword)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login as %s failed with status %d: %v", email, t.response.status, t.response.body)
	}

	if id, ok := getFieldValue(t.response.body, "user.id").(string); ok {
		t.currentUserID, _ = uuid.Parse(id)
	}
	return nil
}

func (t *testContext) theEmissionFactorExists(name string, scope int, value, unit string) error {
	factorValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid factor value %q: %w", value, err)
	}

	f := entity.NewEmissionFactor(name, "integration", entity.Scope(scope), factorValue, unit, "test catalogue")
	if err := t.injector.FactorRepo.Create(context.Background(), f); err != nil {
		return err
	}

	t.factorIDs[name] = f.ID
	return nil
}

func (t *testContext) iRecordedActivity(value, unit, factorName, date string) error {
	factorID, ok := t.factorIDs[factorName]
	if !ok {
		return fmt.Errorf("unknown emission factor %q", factorName)
	}

	payload := fmt.Sprintf(`{"factor_id": %q, "activity_value": %s, "activity_unit": %q, "date_period_start": %q}`,
		factorID.String(), value, unit, date)
	if err := t.executeRequest(http.MethodPost, "/api/v1/inputs", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("recording activity failed with status %d: %v", t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theEmailProviderAcceptsMessages() error {
	t.emailAPI.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": uuid.NewString()})
	return nil
}

func (t *testContext) theEmailProviderRejectsMessages(status int) error {
	t.emailAPI.SetResponse(http.MethodPost, "/emails", status, map[string]any{
		"statusCode": status,
		"name":       "validation_error",
		"message":    "Invalid `to` field",
	})
	return nil
}

func (t *testContext) theEmailWorkerRuns() error {
	if t.injector.EmailWorker == nil {
		return errors.New("email worker is disabled")
	}
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	got := len(t.emailAPI.Requests(http.MethodPost, "/emails"))
	if got != count {
		return fmt.Errorf("expected %d emails, got %d", count, got)
	}
	return nil
}

func (t *testContext) lastEmail() (map[string]any, error) {
	requests := t.emailAPI.Requests(http.MethodPost, "/emails")
	if len(requests) == 0 {
		return nil, errors.New("no email was sent")
	}
	return requests[len(requests)-1].Body, nil
}

func (t *testContext) theLastEmailShouldBeAddressedTo(email string) error {
	body, err := t.lastEmail()
	if err != nil {
		return err
	}
	recipients, _ := body["to"].([]any)
	for _, r := range recipients {
		if s, ok := r.(string); ok && strings.Contains(s, email) {
			return nil
		}
	}
	return fmt.Errorf("email not addressed to %s: %v", email, body["to"])
}

func (t *testContext) theLastEmailSubjectShouldContain(text string) error {
	body, err := t.lastEmail()
	if err != nil {
		return err
	}
	subject, _ := body["subject"].(string)
	if !strings.Contains(subject, text) {
		return fmt.Errorf("subject %q does not contain %q", subject, text)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entitySlicePtr, err := t.newModelSlice(table)
	if err != nil {
		return err
	}

	if err := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	entitySlicePtr, err := t.newModelSlice(table)
	if err != nil {
		return err
	}

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) newModelSlice(table string) (reflect.Value, error) {
	m, ok := t.db.GetModel(table)
	if !ok {
		return reflect.Value{}, fmt.Errorf("table '%s' not found in models", table)
	}
	entityType := reflect.TypeOf(m).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))
	entitySlicePtr.Elem().Set(reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0))
	return entitySlicePtr, nil
}
