// Package http exposes the bicycle use cases over a JSON API served by echo.
package http

import (
	"log/slog"
	"net/http"

	"bikeshare/internal/core/application/usecases/commands"
	"bikeshare/internal/core/application/usecases/queries"
	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests by delegating to the application use cases.
type Server struct {
	// Command handlers
	registerHandler    commands.RegisterBicycleCommandHandler
	deregisterHandler  commands.DeregisterBicycleCommandHandler
	reportHandler      commands.ReportBreakdownCommandHandler
	startRentalHandler commands.StartRentalCommandHandler
	endRentalHandler   commands.EndRentalCommandHandler
	moveHandler        commands.MoveBicycleCommandHandler

	// Query handlers
	getBicycleHandler    queries.GetBicycleQueryHandler
	listBicyclesHandler  queries.ListBicyclesQueryHandler
	fleetStatsHandler    queries.GetFleetStatsQueryHandler
	repairHistoryHandler queries.GetRepairHistoryQueryHandler

	refusals RefusalRecorder
	logger   *slog.Logger
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Register      commands.RegisterBicycleCommandHandler
	Deregister    commands.DeregisterBicycleCommandHandler
	Report        commands.ReportBreakdownCommandHandler
	StartRental   commands.StartRentalCommandHandler
	EndRental     commands.EndRentalCommandHandler
	Move          commands.MoveBicycleCommandHandler
	GetBicycle    queries.GetBicycleQueryHandler
	ListBicycles  queries.ListBicyclesQueryHandler
	FleetStats    queries.GetFleetStatsQueryHandler
	RepairHistory queries.GetRepairHistoryQueryHandler
}

// NewServer creates a server. refusals may be nil.
func NewServer(h Handlers, refusals RefusalRecorder, logger *slog.Logger) *Server {
	if refusals == nil {
		refusals = nopRefusals{}
	}
	return &Server{
		registerHandler:      h.Register,
		deregisterHandler:    h.Deregister,
		reportHandler:        h.Report,
		startRentalHandler:   h.StartRental,
		endRentalHandler:     h.EndRental,
		moveHandler:          h.Move,
		getBicycleHandler:    h.GetBicycle,
		listBicyclesHandler:  h.ListBicycles,
		fleetStatsHandler:    h.FleetStats,
		repairHistoryHandler: h.RepairHistory,
		refusals:             refusals,
		logger:               logger.With("component", "http_server"),
	}
}

// RegisterBicycle handles POST /api/v1/bicycles.
func (s *Server) RegisterBicycle(c echo.Context) error {
	var req NewBicycle
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	id, idErr := kernel.NewBicycleID(req.ID)
	kind, kindErr := bicycle.ParseKind(req.Kind)
	station, stationErr := kernel.NewStation(req.Station)
	for _, err := range []error{idErr, kindErr, stationErr} {
		if err != nil {
			return s.fail(c, err)
		}
	}

	cmd, err := commands.NewRegisterBicycleCommand(id, kind, station)
	if err != nil {
		return s.fail(c, err)
	}

	snapshot, err := s.registerHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, snapshotToBicycle(snapshot))
}

// DeregisterBicycle handles DELETE /api/v1/bicycles/:id.
func (s *Server) DeregisterBicycle(c echo.Context) error {
	id, err := kernel.NewBicycleID(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeregisterBicycleCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.deregisterHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetBicycle handles GET /api/v1/bicycles/:id.
func (s *Server) GetBicycle(c echo.Context) error {
	id, err := kernel.NewBicycleID(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetBicycleQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.getBicycleHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toBicycle(view))
}

// ListBicycles handles GET /api/v1/bicycles with an optional ?status= filter.
func (s *Server) ListBicycles(c echo.Context) error {
	query := queries.NewListBicyclesQuery()
	if raw := c.QueryParam("status"); raw != "" {
		status, err := bicycle.ParseStatus(raw)
		if err != nil {
			return s.fail(c, err)
		}
		if query, err = queries.NewListBicyclesByStatusQuery(status); err != nil {
			return s.fail(c, err)
		}
	}

	views, err := s.listBicyclesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Bicycle, len(views))
	for i, v := range views {
		response[i] = toBicycle(v)
	}
	return c.JSON(http.StatusOK, response)
}

// MoveBicycle handles PUT /api/v1/bicycles/:id/station.
func (s *Server) MoveBicycle(c echo.Context) error {
	id, err := kernel.NewBicycleID(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req StationChange
	if err = bindAndValidate(c, &req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	station, err := kernel.NewStation(req.Station)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewMoveBicycleCommand(id, station)
	if err != nil {
		return s.fail(c, err)
	}

	snapshot, err := s.moveHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, snapshotToBicycle(snapshot))
}

// ReportBreakdown handles POST /api/v1/bicycles/:id/breakdowns. The repair
// workflow runs in the background, so an accepted report answers 202.
func (s *Server) ReportBreakdown(c echo.Context) error {
	id, err := kernel.NewBicycleID(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req NewBreakdown
	if err = bindAndValidate(c, &req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}
	causes, err := breakdown.ParseCauses(req.Causes)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReportBreakdownCommand(id, causes)
	if err != nil {
		return s.fail(c, err)
	}

	report, err := s.reportHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusAccepted, toReport(report))
}

// GetRepairHistory handles GET /api/v1/bicycles/:id/repairs.
func (s *Server) GetRepairHistory(c echo.Context) error {
	id, err := kernel.NewBicycleID(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetRepairHistoryQuery(id)
	if err != nil {
		return s.fail(c, err)
	}

	repairs, err := s.repairHistoryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Repair, len(repairs))
	for i, r := range repairs {
		response[i] = toRepair(r)
	}
	return c.JSON(http.StatusOK, response)
}

// StartRental handles POST /api/v1/bicycles/:id/rental.
func (s *Server) StartRental(c echo.Context) error {
	id, err := kernel.NewBicycleID(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewStartRentalCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	record, err := s.startRentalHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, toRental(record))
}

// EndRental handles DELETE /api/v1/bicycles/:id/rental. The body is optional and
// may name the station the bicycle was returned to.
func (s *Server) EndRental(c echo.Context) error {
	id, err := kernel.NewBicycleID(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req RentalReturn
	if c.Request().ContentLength > 0 {
		if err = bindAndValidate(c, &req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}
	}

	var returnStation *kernel.Station
	if req.ReturnStation != "" {
		station, stationErr := kernel.NewStation(req.ReturnStation)
		if stationErr != nil {
			return s.fail(c, stationErr)
		}
		returnStation = &station
	}

	cmd, err := commands.NewEndRentalCommand(id, returnStation)
	if err != nil {
		return s.fail(c, err)
	}

	usage, err := s.endRentalHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toUsage(usage))
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(c echo.Context) error {
	stats, err := s.fleetStatsHandler.Handle(c.Request().Context(), queries.NewGetFleetStatsQuery())
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toStats(stats))
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
