package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	reportapimodels "perf-track-backend/models/api/report"
)

type Provider interface {
	ExportSupervisorSummary(data reportapimodels.SupervisorSummary) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var summaryHeaders = []string{"Metric", "Value"}

func (i impl) ExportSupervisorSummary(data reportapimodels.SupervisorSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, summaryHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	rows := []struct {
		metric string
		value  interface{}
	}{
		{"Total tasks", data.TaskCount},
		{"Staff members", data.StaffCount},
		{"Average tasks per staff", data.AvgTasksPerStaff},
		{"Achieved", data.Achieved},
		{"On process", data.OnProcess},
		{"Awaiting review", data.AwaitingReview},
		{"Awaiting approval", data.AwaitingApproval},
		{"Not yet started", data.NotYetStarted},
	}
	for _, item := range rows {
		row++
		if err = writeColumn(f, sheet, 1, row, item.metric); err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data")
		}
		if err = writeColumn(f, sheet, 2, row, item.value); err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data")
		}
	}
	f.SetSheetName(sheet, "Team summary")
	return f.WriteToBuffer()
}
