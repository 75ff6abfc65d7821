package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admissionapi/internal/model"
	"admissionapi/internal/service"
	serviceMocks "admissionapi/internal/service/mocks"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateCase(t *testing.T) {
	mockSvc := new(serviceMocks.MockCaseService)
	app := fiber.New()
	app.Post("/admissions", CreateCase(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.CreateCaseInput{
			CandidateName:  "Maria Souza",
			CandidateCPF:   "123.456.789-01",
			CandidateEmail: "maria@example.com",
			ContractType:   model.ContractCLT,
		}
		expected := &model.AdmissionCase{ID: uuid.NewString(), Stage: model.StageSolicitacaoVaga}
		mockSvc.On("Create", mock.Anything, in).Return(expected, nil).Once()

		payload, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPost, "/admissions", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.AdmissionCase
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid input", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidInput).Once()

		req := httptest.NewRequest(http.MethodPost, "/admissions", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_INPUT", res.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admissions", bytes.NewReader([]byte(`{not json`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})
}

func TestGetCase(t *testing.T) {
	mockSvc := new(serviceMocks.MockCaseService)
	app := fiber.New()
	app.Get("/admissions/:id", GetCase(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		expected := &model.AdmissionCase{ID: id, Stage: model.StageAprovacao}
		mockSvc.On("Get", mock.Anything, id).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/admissions/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/admissions/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admissions/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestAdvanceCase(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkflowService)
	app := fiber.New()
	app.Post("/admissions/:id/advance", AdvanceCase(mockSvc))

	id := uuid.NewString()

	t.Run("success passes the actor header", func(t *testing.T) {
		expected := &model.AdmissionCase{ID: id, Stage: model.StageAprovacao}
		mockSvc.On("Advance", mock.Anything, id, model.StageAprovacao, "hr-1").Return(expected, nil).Once()

		payload := []byte(`{"stage":"APROVACAO"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/advance", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(actorHeader, "hr-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing documents surface as details", func(t *testing.T) {
		gateErr := &service.IncompleteDocumentsError{Missing: []string{"PROOF_OF_ADDRESS"}}
		mockSvc.On("Advance", mock.Anything, id, model.StageValidacaoDocumentos, "system").Return(nil, gateErr).Once()

		payload := []byte(`{"stage":"VALIDACAO_DOCUMENTOS"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/advance", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INCOMPLETE_DOCUMENTS", res.Error.Code)
		assert.Equal(t, []string{"PROOF_OF_ADDRESS"}, res.Error.Details)
	})

	t.Run("stale state maps to conflict", func(t *testing.T) {
		mockSvc.On("Advance", mock.Anything, id, model.StageAprovacao, "system").Return(nil, service.ErrStaleState).Once()

		payload := []byte(`{"stage":"APROVACAO"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/advance", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STALE_STATE", res.Error.Code)
	})

	t.Run("unknown stage", func(t *testing.T) {
		payload := []byte(`{"stage":"ONBOARDED"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/advance", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_STAGE", res.Error.Code)
	})
}

func TestCancelCase(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkflowService)
	app := fiber.New()
	app.Post("/admissions/:id/cancel", CancelCase(mockSvc))

	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		expected := &model.AdmissionCase{ID: id, Status: model.StatusCancelada}
		mockSvc.On("Cancel", mock.Anything, id, "position closed", "system").Return(expected, nil).Once()

		payload := []byte(`{"reason":"position closed"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/cancel", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("terminal case conflicts", func(t *testing.T) {
		mockSvc.On("Cancel", mock.Anything, id, "again", "system").Return(nil, service.ErrInvalidState).Once()

		payload := []byte(`{"reason":"again"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/cancel", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CASE_TERMINAL", res.Error.Code)
	})
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/admissions/:id/documents", UploadDocument(mockSvc))

	caseID := uuid.NewString()

	multipartBody := func(kind string) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		if kind != "" {
			writer.WriteField("kind", kind)
		}
		part, _ := writer.CreateFormFile("file", "rg.pdf")
		part.Write([]byte("fake pdf bytes"))
		writer.Close()
		return body, writer.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		body, ct := multipartBody("ID_FRONT")
		expected := &model.AdmissionDocument{ID: uuid.NewString(), Kind: "ID_FRONT", Status: model.DocumentPending}
		mockSvc.On("Upload", mock.Anything, caseID, "ID_FRONT", mock.Anything, "rg.pdf", mock.Anything, mock.Anything).
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/admissions/"+caseID+"/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.AdmissionDocument
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("kind required", func(t *testing.T) {
		body, ct := multipartBody("")
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+caseID+"/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "KIND_REQUIRED", res.Error.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		body, ct := multipartBody("PASSPORT_SCAN")
		mockSvc.On("Upload", mock.Anything, caseID, "PASSPORT_SCAN", mock.Anything, "rg.pdf", mock.Anything, mock.Anything).
			Return(nil, service.ErrUnknownKind).Once()

		req := httptest.NewRequest(http.MethodPost, "/admissions/"+caseID+"/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNKNOWN_KIND", res.Error.Code)
	})
}

func TestValidateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents/:id/validate", ValidateDocument(mockSvc))

	id := uuid.NewString()

	t.Run("approve", func(t *testing.T) {
		expected := &model.AdmissionDocument{ID: id, Status: model.DocumentApproved}
		mockSvc.On("Validate", mock.Anything, id, "validator-1", model.DocumentApproved, "").
			Return(expected, nil).Once()

		payload := []byte(`{"decision":"APPROVED"}`)
		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/validate", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(actorHeader, "validator-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("already validated", func(t *testing.T) {
		mockSvc.On("Validate", mock.Anything, id, "system", model.DocumentApproved, "").
			Return(nil, service.ErrAlreadyValidated).Once()

		payload := []byte(`{"decision":"APPROVED"}`)
		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/validate", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ALREADY_VALIDATED", res.Error.Code)
	})
}

func TestDispatchCase(t *testing.T) {
	mockSvc := new(serviceMocks.MockDispatchService)
	app := fiber.New()
	app.Post("/admissions/:id/dispatch", DispatchCase(mockSvc))

	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		rec := &model.DispatchRecord{ID: uuid.NewString(), CaseID: id, Target: model.TargetEsocial, Outcome: model.DispatchSucceeded}
		mockSvc.On("Dispatch", mock.Anything, id, model.TargetEsocial, "system").Return(rec, nil).Once()

		payload := []byte(`{"target":"ESOCIAL"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/dispatch", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid target", func(t *testing.T) {
		payload := []byte(`{"target":"SAP"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/dispatch", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_TARGET", res.Error.Code)
	})

	t.Run("stage mismatch", func(t *testing.T) {
		mockSvc.On("Dispatch", mock.Anything, id, model.TargetThomson, "system").
			Return(nil, service.ErrStageMismatch).Once()

		payload := []byte(`{"target":"THOMSON_REUTERS"}`)
		req := httptest.NewRequest(http.MethodPost, "/admissions/"+id+"/dispatch", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STAGE_MISMATCH", res.Error.Code)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, Services{
		Cases:      new(serviceMocks.MockCaseService),
		Workflow:   new(serviceMocks.MockWorkflowService),
		Checklist:  new(serviceMocks.MockChecklistService),
		Documents:  new(serviceMocks.MockDocumentService),
		Dispatches: new(serviceMocks.MockDispatchService),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
