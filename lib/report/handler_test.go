package reporthandler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	reportstore "perf-track-backend/lib/report/store"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/models"
	reportapimodels "perf-track-backend/models/api/report"
	dbmodels "perf-track-backend/models/db"
)

type fakeReportStore struct {
	reportstore.Provider
	seq     int
	reports map[string]*dbmodels.Report
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: map[string]*dbmodels.Report{}}
}

func (f *fakeReportStore) Create(rec dbmodels.Report) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("report-%d", f.seq)
	f.reports[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeReportStore) GetByID(id string) (*dbmodels.Report, error) {
	rec, exist := f.reports[id]
	if !exist {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeReportStore) GetByUserAndPeriod(userID, period string) (*dbmodels.Report, error) {
	for _, rec := range f.reports {
		if rec.UserID == userID && rec.Period == period {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeReportStore) Update(id string, updMap map[string]interface{}) error {
	rec := f.reports[id]
	for key, value := range updMap {
		switch key {
		case "score":
			rec.Score = value.(int)
		case "status":
			rec.Status = value.(models.ReportStatus)
		case "review":
			rec.Review = value.(string)
		}
	}
	return nil
}

func (f *fakeReportStore) Delete(id string) (bool, error) {
	if _, exist := f.reports[id]; !exist {
		return false, nil
	}
	delete(f.reports, id)
	return true, nil
}

type fakeUserStore struct {
	usersstore.Provider
	users map[string]*dbmodels.User
}

func (f *fakeUserStore) GetByID(id string) (*dbmodels.User, error) {
	rec, exist := f.users[id]
	if !exist {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func newTestHandler(reports *fakeReportStore, userIDs ...string) impl {
	users := map[string]*dbmodels.User{}
	for _, id := range userIDs {
		users[id] = &dbmodels.User{
			BaseModel: dbmodels.BaseModel{ID: id},
			FirstName: "Dana",
			Role:      models.StaffRole,
		}
	}
	return impl{
		store:     reports,
		userStore: &fakeUserStore{users: users},
	}
}

func intPtr(value int) *int {
	return &value
}

func strPtr(value string) *string {
	return &value
}

func TestReportHandler(t *testing.T) {
	validData := reportapimodels.ReportData{
		UserID: "u1",
		Period: "2025-06",
		Score:  80,
		Review: "Solid quarter",
	}

	t.Run(`created report defaults to awaiting review`, func(t *testing.T) {
		reports := newFakeReportStore()
		handler := newTestHandler(reports, "u1")

		id, err := handler.Create(validData)
		require.Nil(t, err)
		require.Equal(t, models.ReportStatusAwaitingReview, reports.reports[id].Status)
	})

	t.Run(`a second report for the same user and period conflicts`, func(t *testing.T) {
		reports := newFakeReportStore()
		handler := newTestHandler(reports, "u1")

		_, err := handler.Create(validData)
		require.Nil(t, err)

		_, err = handler.Create(validData)
		require.True(t, apperr.IsConflict(err))
		require.Len(t, reports.reports, 1)
	})

	t.Run(`same user in another period is fine`, func(t *testing.T) {
		reports := newFakeReportStore()
		handler := newTestHandler(reports, "u1")

		_, err := handler.Create(validData)
		require.Nil(t, err)

		other := validData
		other.Period = "2025-07"
		_, err = handler.Create(other)
		require.Nil(t, err)
		require.Len(t, reports.reports, 2)
	})

	t.Run(`malformed period is rejected`, func(t *testing.T) {
		handler := newTestHandler(newFakeReportStore(), "u1")

		data := validData
		data.Period = "06-2025"
		_, err := handler.Create(data)
		require.True(t, apperr.IsValidation(err))
	})

	t.Run(`unknown owner reports not found`, func(t *testing.T) {
		handler := newTestHandler(newFakeReportStore())
		_, err := handler.Create(validData)
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run(`patch touches only the provided fields`, func(t *testing.T) {
		reports := newFakeReportStore()
		handler := newTestHandler(reports, "u1")
		id, _ := handler.Create(validData)

		item, err := handler.Update(id, reportapimodels.ReportPatch{
			Score:  intPtr(95),
			Status: strPtr(string(models.ReportStatusDone)),
		})
		require.Nil(t, err)
		require.Equal(t, 95, item.Score)
		require.Equal(t, string(models.ReportStatusDone), item.Status)
		require.Equal(t, "Solid quarter", item.Review)
	})

	t.Run(`patch with unknown status is rejected`, func(t *testing.T) {
		reports := newFakeReportStore()
		handler := newTestHandler(reports, "u1")
		id, _ := handler.Create(validData)

		_, err := handler.Update(id, reportapimodels.ReportPatch{Status: strPtr("archived")})
		require.True(t, apperr.IsValidation(err))
	})

	t.Run(`delete of unknown report reports not found`, func(t *testing.T) {
		handler := newTestHandler(newFakeReportStore())
		err := handler.Delete("missing")
		require.True(t, apperr.IsNotFound(err))
	})
}
