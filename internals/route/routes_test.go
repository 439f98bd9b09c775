package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bimbel_backend/internals/configs"
	attendanceModel "bimbel_backend/internals/features/payroll/attendances/model"
	"bimbel_backend/internals/features/payroll/errs"
	helperOSS "bimbel_backend/internals/helpers/oss"
	"bimbel_backend/internals/middlewares"
	testutil "bimbel_backend/internals/tests"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type apiResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Hint      string              `json:"hint"`
	Data      json.RawMessage     `json:"data"`
}

type salaryData struct {
	ID             uuid.UUID `json:"id"`
	MentorID       uuid.UUID `json:"mentor_id"`
	TotalSessions  int       `json:"total_sessions"`
	RatePerSession int64     `json:"rate_per_session"`
	TotalAmount    int64     `json:"total_amount"`
	Status         string    `json:"status"`
	ProofImage     *string   `json:"proof_image"`
}

func newTestApp(t *testing.T, blob helperOSS.BlobService) (*fiber.App, *gorm.DB) {
	db := testutil.PrepareDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	SetupRoutes(app, Deps{
		DB:   db,
		Blob: blob,
		Config: configs.Config{
			JWTSecret:      testSecret,
			ProofDir:       "payroll/proofs",
			MentorCacheTTL: time.Minute,
		},
	})
	return app, db
}

func token(t *testing.T, role string) string {
	claims := jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, role string, body interface{}) (int, apiResponse) {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if role != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token(t, role))
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, apiResponse) {
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out apiResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func decodeSalary(t *testing.T, r apiResponse) salaryData {
	var s salaryData
	require.NoError(t, json.Unmarshal(r.Data, &s))
	return s
}

func TestRoutes_AuthAndRoles(t *testing.T) {
	app, _ := newTestApp(t, nil)

	status, body := doJSON(t, app, "GET", "/api/finance/salaries", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.ErrorCode)

	status, body = doJSON(t, app, "GET", "/api/finance/salaries", "teacher", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body.ErrorCode)

	status, _ = doJSON(t, app, "GET", "/api/finance/salaries", "accountant", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, "GET", "/api/a/mentor-attendances?month=6&year=2025&mentor_id="+uuid.NewString(), "accountant", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestRoutes_PayrollFlow(t *testing.T) {
	app, db := newTestApp(t, nil)
	mentor := testutil.CreateMentor(t, db, 50000)

	// teacher mencatat 8 sesi present
	for i := 1; i <= 8; i++ {
		status, body := doJSON(t, app, "POST", "/api/a/mentor-attendances", "teacher", fiber.Map{
			"schedule_id":    uuid.NewString(),
			"session_number": 1,
			"mentor_id":      mentor.MentorUserID.String(),
			"month":          6,
			"year":           2025,
			"status":         "present",
			"date":           fmt.Sprintf("2025-06-%02d", i),
		})
		require.Equal(t, fiber.StatusCreated, status, body.Message)
	}

	status, body := doJSON(t, app, "POST", "/api/finance/salaries/draft", "accountant", fiber.Map{
		"mentor_id": mentor.MentorID.String(),
		"month":     6,
		"year":      2025,
		"bonus":     100000,
	})
	require.Equal(t, fiber.StatusOK, status, body.Message)
	draft := decodeSalary(t, body)
	assert.Equal(t, 8, draft.TotalSessions)
	assert.Equal(t, int64(500000), draft.TotalAmount)
	assert.Equal(t, "DRAFT", draft.Status)

	status, body = doJSON(t, app, "POST", "/api/finance/salaries/"+draft.ID.String()+"/pay", "owner", fiber.Map{
		"proof_image": "proof://abc",
	})
	require.Equal(t, fiber.StatusOK, status, body.Message)
	paid := decodeSalary(t, body)
	assert.Equal(t, "PAID", paid.Status)
	require.NotNil(t, paid.ProofImage)
	assert.Equal(t, "proof://abc", *paid.ProofImage)

	status, body = doJSON(t, app, "POST", "/api/finance/salaries/"+draft.ID.String()+"/pay", "owner", fiber.Map{
		"proof_image": "proof://again",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body.ErrorCode)
	assert.Equal(t, errs.HintUseRecalculate, body.Hint)

	status, body = doJSON(t, app, "POST", "/api/finance/salaries/draft", "accountant", fiber.Map{
		"mentor_id": mentor.MentorID.String(),
		"month":     6,
		"year":      2025,
		"bonus":     1,
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, errs.HintUseRecalculate, body.Hint)

	// dua sesi tambahan setelah dibayar → drift, lalu rekalkulasi
	testutil.CreateAttendances(t, db, mentor.MentorID, 6, 2025, 2, attendanceModel.AttendanceStatusPresent)

	status, body = doJSON(t, app, "GET", "/api/finance/salaries/"+draft.ID.String()+"/sync", "accountant", nil)
	require.Equal(t, fiber.StatusOK, status)
	var sync struct {
		Sync struct {
			IsOutOfSync bool `json:"is_out_of_sync"`
			Difference  int  `json:"difference"`
		} `json:"sync"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &sync))
	assert.True(t, sync.Sync.IsOutOfSync)
	assert.Equal(t, 2, sync.Sync.Difference)

	status, body = doJSON(t, app, "POST", "/api/finance/salaries/"+draft.ID.String()+"/recalculate", "accountant", nil)
	require.Equal(t, fiber.StatusOK, status)
	var recalc struct {
		OldSessions int        `json:"old_sessions"`
		NewSessions int        `json:"new_sessions"`
		Salary      salaryData `json:"salary"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &recalc))
	assert.Equal(t, 8, recalc.OldSessions)
	assert.Equal(t, 10, recalc.NewSessions)
	assert.Equal(t, int64(600000), recalc.Salary.TotalAmount)
	assert.Equal(t, "PAID", recalc.Salary.Status)

	status, body = doJSON(t, app, "GET", "/api/finance/salaries/mentor/"+mentor.MentorUserID.String(), "owner", nil)
	require.Equal(t, fiber.StatusOK, status)
	var history []salaryData
	require.NoError(t, json.Unmarshal(body.Data, &history))
	assert.Len(t, history, 1)
}

func TestRoutes_Validation(t *testing.T) {
	app, db := newTestApp(t, nil)
	mentor := testutil.CreateMentor(t, db, 50000)

	status, body := doJSON(t, app, "POST", "/api/finance/salaries/draft", "accountant", fiber.Map{
		"mentor_id": mentor.MentorID.String(),
		"month":     13,
		"year":      2025,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Errors, "month")

	// tarif raksasa tidak boleh wrap jadi total negatif
	status, body = doJSON(t, app, "POST", "/api/finance/salaries/draft", "accountant", fiber.Map{
		"mentor_id":        mentor.MentorID.String(),
		"month":            6,
		"year":             2025,
		"total_sessions":   2,
		"rate_per_session": int64(1) << 62,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Errors, "rate_per_session")

	status, body = doJSON(t, app, "POST", "/api/finance/salaries/"+uuid.NewString()+"/pay", "accountant", fiber.Map{
		"proof_image": "",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Errors, "proof_image")

	status, _ = doJSON(t, app, "GET", "/api/finance/salaries/not-a-uuid", "accountant", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = doJSON(t, app, "GET", "/api/finance/salaries/"+uuid.NewString(), "accountant", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = doJSON(t, app, "GET", "/api/finance/salaries/sync?mentor_id="+mentor.MentorID.String()+"&month=6&year=2025", "accountant", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Errors, "recorded_sessions")
}

func multipartProof(t *testing.T, path, role, filename string) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("proof_image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-image-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token(t, role))
	return req
}

func TestRoutes_PayWithUploadedProof(t *testing.T) {
	var gotDir, gotName string
	blob := &helperOSS.MockBlobService{
		UploadProofFn: func(ctx context.Context, dir, name string, fh *multipart.FileHeader) (string, error) {
			gotDir, gotName = dir, name
			return "https://cdn.test/" + dir + "/" + name + ".webp", nil
		},
	}
	app, db := newTestApp(t, blob)
	mentor := testutil.CreateMentor(t, db, 50000)

	status, body := doJSON(t, app, "POST", "/api/finance/salaries/draft", "accountant", fiber.Map{
		"mentor_id":      mentor.MentorID.String(),
		"month":          6,
		"year":           2025,
		"total_sessions": 4,
	})
	require.Equal(t, fiber.StatusOK, status, body.Message)
	draft := decodeSalary(t, body)

	status, body = send(t, app, multipartProof(t, "/api/finance/salaries/"+draft.ID.String()+"/pay", "accountant", "bukti.png"))
	require.Equal(t, fiber.StatusOK, status, body.Message)
	paid := decodeSalary(t, body)

	assert.Equal(t, "payroll/proofs/2025/06", gotDir)
	assert.Equal(t, "salary-"+draft.ID.String(), gotName)
	require.NotNil(t, paid.ProofImage)
	assert.Equal(t, "https://cdn.test/payroll/proofs/2025/06/salary-"+draft.ID.String()+".webp", *paid.ProofImage)

	// sudah PAID: tidak upload lagi
	gotDir = ""
	status, _ = send(t, app, multipartProof(t, "/api/finance/salaries/"+draft.ID.String()+"/pay", "accountant", "bukti.png"))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Empty(t, gotDir)
}

func TestRoutes_PayUploadWithoutStorage(t *testing.T) {
	app, db := newTestApp(t, nil)
	mentor := testutil.CreateMentor(t, db, 50000)

	status, body := doJSON(t, app, "POST", "/api/finance/salaries/draft", "accountant", fiber.Map{
		"mentor_id":      mentor.MentorID.String(),
		"month":          6,
		"year":           2025,
		"total_sessions": 4,
	})
	require.Equal(t, fiber.StatusOK, status, body.Message)
	draft := decodeSalary(t, body)

	status, _ = send(t, app, multipartProof(t, "/api/finance/salaries/"+draft.ID.String()+"/pay", "accountant", "bukti.png"))
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestRoutes_Export(t *testing.T) {
	app, db := newTestApp(t, nil)
	mentor := testutil.CreateMentor(t, db, 50000)

	status, _ := doJSON(t, app, "POST", "/api/finance/salaries/draft", "accountant", fiber.Map{
		"mentor_id":      mentor.MentorID.String(),
		"month":          6,
		"year":           2025,
		"total_sessions": 4,
	})
	require.Equal(t, fiber.StatusOK, status)

	req := httptest.NewRequest("GET", "/api/finance/salaries/export?month=6&year=2025", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token(t, "owner"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "gaji_mentor_2025_06.xlsx")
	raw, _ := io.ReadAll(resp.Body)
	assert.NotEmpty(t, raw)
}

func TestRoutes_Health(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
