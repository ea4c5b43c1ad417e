package bot

import (
	"errors"
	"testing"

	"assetmaster"

	"github.com/stretchr/testify/assert"
)

type controllerMock struct {
	launched []uint
	err      error
}

func (c *controllerMock) Events() []*assetmaster.EnrolledEvent {
	return []*assetmaster.EnrolledEvent{
		{Id: 1, Title: "목표 비용 확인", Description: "설명", IsActive: true},
		{Id: 2, Title: "순자산 스냅샷", Description: "설명", IsActive: false},
	}
}

func (c *controllerMock) LaunchEvent(id uint) error {
	if c.err != nil {
		return c.err
	}
	c.launched = append(c.launched, id)
	return nil
}

func TestCommand(t *testing.T) {

	t.Run("일반 텍스트 무시", func(t *testing.T) {
		assert.Empty(t, command(&controllerMock{}, "안녕"))
		assert.Empty(t, command(&controllerMock{}, ""))
	})

	t.Run("help", func(t *testing.T) {
		assert.Equal(t, helpMsg, command(&controllerMock{}, "/help"))
	})

	t.Run("events", func(t *testing.T) {
		rtn := command(&controllerMock{}, "/events")
		assert.Contains(t, rtn, "1. 목표 비용 확인 (활성: true)")
		assert.Contains(t, rtn, "2. 순자산 스냅샷 (활성: false)")
	})

	t.Run("check", func(t *testing.T) {
		ctl := &controllerMock{}
		assert.Equal(t, "이벤트 1 실행 완료", command(ctl, "/check"))
		assert.Equal(t, []uint{assetmaster.TargetCheckEventId}, ctl.launched)
	})

	t.Run("launch", func(t *testing.T) {
		ctl := &controllerMock{}
		assert.Equal(t, "이벤트 2 실행 완료", command(ctl, "/launch 2"))
		assert.Contains(t, command(ctl, "/launch"), "id 필요")
		assert.Contains(t, command(ctl, "/launch x"), "잘못된 이벤트 id")

		ctl.err = errors.New("비활성화 이벤트 Id: 2")
		assert.Equal(t, "비활성화 이벤트 Id: 2", command(ctl, "/launch 2"))
	})

	t.Run("미지원", func(t *testing.T) {
		assert.Contains(t, command(&controllerMock{}, "/funds"), "미지원 명령어 : /funds")
	})
}
