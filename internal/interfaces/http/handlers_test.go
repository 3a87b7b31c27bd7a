package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/semillas-api/internal/application/dto"
	"github.com/jhoicas/semillas-api/internal/application/production"
	"github.com/jhoicas/semillas-api/internal/infrastructure/memory"
	"github.com/jhoicas/semillas-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/semillas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/semillas-api/pkg/jwt"
	"github.com/jhoicas/semillas-api/pkg/logger"
)

// apiClient app completa sobre el almacenamiento en memoria.
type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	store := memory.NewStore()
	store.SeedDemo()
	repos := store.Repos()
	log := logger.Nop()

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		IntakeUC:    production.NewIntakeOrderUseCase(store, repos, log),
		BatchUC:     production.NewBatchUseCase(store, repos, log),
		LedgerUC:    production.NewLedgerUseCase(store, repos, log),
		OutgoingUC:  production.NewOutgoingOrderUseCase(store, repos, log),
		InventoryUC: production.NewInventoryUseCase(repos, xlsx.NewInventoryExporter(), log),
		JWTSecret:   testJWTSecret,
	})
	return &apiClient{t: t, app: app}
}

func (a *apiClient) token(unitID, role string) string {
	tok, err := pkgjwt.Generate(testJWTSecret, "u-"+role, unitID, role, testIssuer, testExpMin)
	require.NoError(a.t, err)
	return "Bearer " + tok
}

// do lanza la petición y decodifica el cuerpo en out (si no es nil).
func (a *apiClient) do(method, path, auth string, body any, out any) *http.Response {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (a *apiClient) createOrder(auth, number, netWeight string) dto.IntakeOrderResponse {
	a.t.Helper()
	var o dto.IntakeOrderResponse
	resp := a.do(http.MethodPost, "/api/intake-orders", auth, map[string]any{
		"order_number": number,
		"variety_id":   memory.DemoSoja,
		"category_id":  memory.DemoPrimera,
		"net_weight":   netWeight,
	}, &o)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	return o
}

func (a *apiClient) createBatch(auth, orderID string, units int, kgPerUnit string) dto.BatchResponse {
	a.t.Helper()
	var b dto.BatchResponse
	resp := a.do(http.MethodPost, "/api/intake-orders/"+orderID+"/batches", auth, map[string]any{
		"category_id":  memory.DemoPrimera,
		"presentation": "bolsas",
		"units":        units,
		"kg_per_unit":  kgPerUnit,
	}, &b)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	return b
}

func TestAPI_AsignacionConTopeDePeso(t *testing.T) {
	api := newAPI(t)
	op := api.token(memory.DemoUnitNorte, "operador")

	o := api.createOrder(op, "OI-100", "1000")
	assert.Equal(t, "pendiente", o.Status)

	b := api.createBatch(op, o.ID, 500, "1.5")
	assert.Equal(t, "750.00", b.OriginalKg)
	assert.Equal(t, "OI-100-L001", b.LotNumber)
	assert.Equal(t, "500 bolsas", b.PresentationLabel)

	var e dto.ErrorResponse
	resp := api.do(http.MethodPost, "/api/intake-orders/"+o.ID+"/batches", op, map[string]any{
		"category_id": memory.DemoPrimera, "presentation": "bolsas", "units": 200, "kg_per_unit": "1.5",
	}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_WEIGHT", e.Code)
	assert.Equal(t, "50.00", e.Details["deficit_kg"])
	assert.Equal(t, "250.00", e.Details["available_kg"])

	var avail dto.AvailableWeightResponse
	resp = api.do(http.MethodGet, "/api/intake-orders/"+o.ID+"/available-weight", op, nil, &avail)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "250.00", avail.AvailableKg)

	var got dto.IntakeOrderResponse
	api.do(http.MethodGet, "/api/intake-orders/"+o.ID, op, nil, &got)
	assert.Equal(t, "en_proceso", got.Status)
}

func TestAPI_ValidacionYPermisos(t *testing.T) {
	api := newAPI(t)
	op := api.token(memory.DemoUnitNorte, "operador")
	ve := api.token(memory.DemoUnitNorte, "vendedor")
	sur := api.token(memory.DemoUnitSur, "operador")

	resp := api.do(http.MethodPost, "/api/intake-orders", ve, map[string]any{"order_number": "X"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "vendedor no registra ingresos")

	var e dto.ErrorResponse
	resp = api.do(http.MethodPost, "/api/intake-orders", op, map[string]any{
		"order_number": "OI-1", "variety_id": memory.DemoSoja, "category_id": memory.DemoPrimera, "net_weight": "0",
	}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Details, "net_weight")

	o := api.createOrder(op, "OI-2", "100")
	resp = api.do(http.MethodGet, "/api/intake-orders/"+o.ID, sur, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "otra sede")

	resp = api.do(http.MethodGet, "/api/batches/no-existe", op, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = api.do(http.MethodGet, "/api/batches", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LibroDeMovimientos(t *testing.T) {
	api := newAPI(t)
	op := api.token(memory.DemoUnitNorte, "operador")
	o := api.createOrder(op, "OI-1", "1000")
	b := api.createBatch(op, o.ID, 100, "1.5")
	path := "/api/batches/" + b.ID + "/movements"

	var m dto.MovementResponse
	resp := api.do(http.MethodPost, path, op, map[string]any{"type": "salida", "units": 40}, &m)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, m.Sequence)
	assert.Equal(t, "-60.00", m.KgDelta)
	assert.Equal(t, 60, m.BalanceUnits)

	var e dto.ErrorResponse
	resp = api.do(http.MethodPost, path, op, map[string]any{"type": "salida", "units": 61}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "LEDGER_UNDERFLOW", e.Code)

	var list []dto.MovementResponse
	api.do(http.MethodGet, path, op, nil, &list)
	assert.Len(t, list, 1, "el movimiento rechazado no deja asiento")

	var sum dto.MovementSummaryResponse
	api.do(http.MethodGet, path+"/summary", op, nil, &sum)
	assert.Equal(t, 40, sum.SalidasUnits)
	assert.Equal(t, "90.00", sum.BalanceKg)
	assert.True(t, sum.Consistent)

	var got dto.BatchResponse
	api.do(http.MethodGet, "/api/batches/"+b.ID, op, nil, &got)
	assert.Equal(t, "parcialmente_vendido", got.Status)
	assert.False(t, got.CanEdit)

	resp = api.do(http.MethodDelete, "/api/batches/"+b.ID, op, nil, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "BATCH_CLOSED", e.Code)
}

func TestAPI_OrdenDeSalidaYAnulacion(t *testing.T) {
	api := newAPI(t)
	op := api.token(memory.DemoUnitNorte, "operador")
	ve := api.token(memory.DemoUnitNorte, "vendedor")
	o := api.createOrder(op, "OI-1", "1000")
	b := api.createBatch(op, o.ID, 10, "2.5")

	var os dto.OutgoingOrderResponse
	resp := api.do(http.MethodPost, "/api/outgoing-orders", ve, map[string]any{
		"lines": []map[string]any{{"batch_id": b.ID, "units": 10}},
	}, &os)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "completada", os.Status)
	assert.Equal(t, "OS-000001", os.OrderNumber)
	require.Len(t, os.Lines, 1)

	var got dto.BatchResponse
	api.do(http.MethodGet, "/api/batches/"+b.ID, op, nil, &got)
	assert.Equal(t, "vendido", got.Status)
	assert.Equal(t, "0.00", got.CurrentKg)

	resp = api.do(http.MethodPost, "/api/outgoing-orders/"+os.ID+"/cancel", ve, nil, &os)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cancelada", os.Status)
	assert.NotNil(t, os.CancelledAt)

	api.do(http.MethodGet, "/api/batches/"+b.ID, op, nil, &got)
	assert.Equal(t, "disponible", got.Status)
	assert.Equal(t, "25.00", got.CurrentKg)

	var e dto.ErrorResponse
	resp = api.do(http.MethodPost, "/api/outgoing-orders/"+os.ID+"/cancel", ve, nil, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", e.Code)

	resp = api.do(http.MethodDelete, "/api/batches/"+b.ID, op, nil, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "BATCH_CLOSED", e.Code, "disponible pero con movimientos")
}

func TestAPI_InventarioConsolidadoYExportacion(t *testing.T) {
	api := newAPI(t)
	op := api.token(memory.DemoUnitNorte, "operador")
	adm := api.token("", "admin")
	o := api.createOrder(op, "OI-1", "1000")
	api.createBatch(op, o.ID, 60, "1")
	api.createBatch(op, o.ID, 40, "1")

	var inv dto.ConsolidatedInventoryResponse
	resp := api.do(http.MethodGet, "/api/inventory/consolidated?variety_id="+memory.DemoSoja, op, nil, &inv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, inv.Rows, 1)
	assert.Equal(t, "100.00", inv.Rows[0].TotalKg)
	assert.Equal(t, "Soja", inv.Rows[0].SeedName)

	resp = api.do(http.MethodGet, "/api/inventory/consolidated?unit_id="+memory.DemoUnitSur, op, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(http.MethodGet, "/api/inventory/consolidated?group_by_unit=true", adm, nil, &inv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, inv.Rows, 1)
	assert.Equal(t, memory.DemoUnitNorte, inv.Rows[0].UnitID)

	resp = api.do(http.MethodGet, "/api/inventory/consolidated/export", op, nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "un xlsx es un zip")
}
