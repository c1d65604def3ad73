package initializers

import (
	"context"

	"perf-track-backend/config"
	"perf-track-backend/fiberlog"
	authhandler "perf-track-backend/lib/auth"
	biascheck "perf-track-backend/lib/bias-check"
	emailverify "perf-track-backend/lib/email-verify"
	xlsexport "perf-track-backend/lib/export/xls"
	filestorage "perf-track-backend/lib/file-storage"
	jobhandler "perf-track-backend/lib/job"
	reporthandler "perf-track-backend/lib/report"
	"perf-track-backend/lib/summary"
	taskhandler "perf-track-backend/lib/task"
	usershandler "perf-track-backend/lib/users"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	filestorage.NewHandler()
	emailverify.Instance = emailverify.NewInstance(config.Conf.Smtp.VerificationSender)
	biascheck.NewHandler()
	xlsexport.NewHandler()
	usershandler.NewHandler()
	authhandler.NewHandler()
	taskhandler.NewHandler()
	jobhandler.NewHandler()
	reporthandler.NewHandler()
	summary.NewHandler()
}
