package repo

import (
	"fmt"
	"testing"
	"time"

	"labfleet/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Lab{}, &models.Computer{}, &models.ComputerCommand{}, &models.ScheduledTask{}))
	return db
}

func TestScheduledTaskRepositoryListActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledTaskRepository(db)

	require.NoError(t, repo.Create(&models.ScheduledTask{Name: "b", Command: models.CommandShutdown, TargetType: models.TargetLab, TargetID: 1, Frequency: models.FrequencyDaily, Time: "09:00", IsActive: true}))
	require.NoError(t, repo.Create(&models.ScheduledTask{Name: "a", Command: models.CommandLock, TargetType: models.TargetLab, TargetID: 1, Frequency: models.FrequencyDaily, Time: "09:00", IsActive: true}))
	require.NoError(t, repo.Create(&models.ScheduledTask{Name: "inactive", Command: models.CommandLock, TargetType: models.TargetLab, TargetID: 1, Frequency: models.FrequencyDaily, Time: "09:00", IsActive: false}))

	tasks, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	// id order, not name order
	assert.Equal(t, "b", tasks[0].Name)
	assert.Equal(t, "a", tasks[1].Name)
}

func TestScheduledTaskRepositoryCreateValidates(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledTaskRepository(db)

	err := repo.Create(&models.ScheduledTask{Name: "bad", Command: models.CommandShutdown, TargetType: models.TargetLab, TargetID: 1, Frequency: models.FrequencyWeekly, Time: "09:00", IsActive: true})
	assert.Error(t, err)
}

func TestScheduledTaskRepositoryRecordRun(t *testing.T) {
	db := newTestDB(t)
	repo := NewScheduledTaskRepository(db)

	task := &models.ScheduledTask{Name: "t", Command: models.CommandShutdown, TargetType: models.TargetLab, TargetID: 1, Frequency: models.FrequencyDaily, Time: "09:00", IsActive: true}
	require.NoError(t, repo.Create(task))

	runAt := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordRun(task.ID, runAt, models.RunStatusSuccess, "Executado em 2/2 computador(es)", false))

	got, err := repo.FindByID(task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastRunAt)
	assert.Equal(t, runAt.Unix(), got.LastRunAt.Unix())
	assert.Equal(t, models.RunStatusSuccess, got.LastRunStatus)
	assert.Equal(t, "Executado em 2/2 computador(es)", got.LastRunOutput)
	assert.True(t, got.IsActive)

	require.NoError(t, repo.RecordRun(task.ID, runAt, models.RunStatusFailed, "falha", true))
	got, err = repo.FindByID(task.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, models.RunStatusFailed, got.LastRunStatus)
}

func TestComputerCommandRepositoryExpirePending(t *testing.T) {
	db := newTestDB(t)
	repo := NewComputerCommandRepository(db)

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	expired := &models.ComputerCommand{UUID: "c1", ComputerID: 1, Command: models.CommandShutdown, Status: models.CommandStatusPending, ExpiresAt: &past}
	fresh := &models.ComputerCommand{UUID: "c2", ComputerID: 1, Command: models.CommandShutdown, Status: models.CommandStatusPending, ExpiresAt: &future}
	done := &models.ComputerCommand{UUID: "c3", ComputerID: 1, Command: models.CommandShutdown, Status: models.CommandStatusDone, ExpiresAt: &past}
	require.NoError(t, repo.Create(expired))
	require.NoError(t, repo.Create(fresh))
	require.NoError(t, repo.Create(done))

	n, err := repo.ExpirePending(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cmds, err := repo.ListByComputer(1)
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, models.CommandStatusFailed, cmds[0].Status)
	assert.Equal(t, expiredOutput, cmds[0].Output)
	assert.Equal(t, models.CommandStatusPending, cmds[1].Status)
	assert.Equal(t, models.CommandStatusDone, cmds[2].Status)
}

func TestComputerRepositoryFindOnlineProxy(t *testing.T) {
	db := newTestDB(t)
	repo := NewComputerRepository(db)

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	target := models.Computer{LabID: 1, MachineID: "m1", Hostname: "lab1-pc01", UpdatedAt: now.Add(-10 * time.Minute)}
	offline := models.Computer{LabID: 1, MachineID: "m2", Hostname: "lab1-pc02", UpdatedAt: now.Add(-20 * time.Minute)}
	online := models.Computer{LabID: 1, MachineID: "m3", Hostname: "lab1-pc03", UpdatedAt: now.Add(-time.Minute)}
	otherLab := models.Computer{LabID: 2, MachineID: "m4", Hostname: "lab2-pc01", UpdatedAt: now}
	require.NoError(t, db.Create(&target).Error)
	require.NoError(t, db.Create(&offline).Error)
	require.NoError(t, db.Create(&online).Error)
	require.NoError(t, db.Create(&otherLab).Error)

	assert.True(t, online.OnlineAt(now))
	assert.False(t, offline.OnlineAt(now))

	proxy, err := repo.FindOnlineProxy(1, target.ID, now.Add(-models.OnlineWindow))
	require.NoError(t, err)
	assert.Equal(t, "lab1-pc03", proxy.Hostname)

	// the target itself is excluded even when its heartbeat qualifies
	require.NoError(t, repo.Heartbeat(target.ID, now))
	proxy, err = repo.FindOnlineProxy(1, target.ID, now.Add(-models.OnlineWindow))
	require.NoError(t, err)
	assert.Equal(t, "lab1-pc03", proxy.Hostname)

	_, err = repo.FindOnlineProxy(3, 0, now.Add(-models.OnlineWindow))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
