/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tzdb_test

//go:generate mockgen -source=../tz/zone.go -destination=mocks/mocks.go -package=mocks Database

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"dirpx.dev/dxtime/dxcore/model/civil"
	"dirpx.dev/dxtime/dxcore/tzdb"
	"dirpx.dev/dxtime/dxcore/tzdb/mocks"
)

type CacheSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	db      *mocks.MockDatabase
	metrics *tzdb.Metrics
	cache   *tzdb.Cache
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.db = mocks.NewMockDatabase(s.ctrl)
	s.metrics = tzdb.NewMetrics(prometheus.NewRegistry())

	var err error
	s.cache, err = tzdb.NewCache(s.db, 2, tzdb.WithMetrics(s.metrics))
	s.Require().NoError(err)
}

func (s *CacheSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CacheSuite) TestCanonical_CachesAnswers() {
	s.db.EXPECT().Canonical("europe/paris").Return("Europe/Paris", nil).Times(1)

	for range 3 {
		id, err := s.cache.Canonical("europe/paris")
		s.Require().NoError(err)
		s.Equal("Europe/Paris", id)
	}

	s.Equal(2.0, testutil.ToFloat64(s.metrics.Hits.WithLabelValues("canonical")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Misses.WithLabelValues("canonical")))
}

func (s *CacheSuite) TestCanonical_ErrorsAreNotCached() {
	boom := stderrors.New("boom")
	s.db.EXPECT().Canonical("Nowhere").Return("", boom).Times(2)

	for range 2 {
		_, err := s.cache.Canonical("Nowhere")
		s.ErrorIs(err, boom)
	}
	s.Equal(0, s.cache.Len())
}

func (s *CacheSuite) TestWallClock_CachesPerSecond() {
	noon := civil.DateTime{Date: civil.Date{Year: 2021, Month: 6, Day: 1}, Time: civil.Time{Hour: 12}}
	gomock.InOrder(
		s.db.EXPECT().WallClock("Europe/Paris", int64(100)).Return(noon, nil),
		s.db.EXPECT().WallClock("Europe/Paris", int64(101)).Return(noon, nil),
	)

	for _, secs := range []int64{100, 100, 101} {
		got, err := s.cache.WallClock("Europe/Paris", secs)
		s.Require().NoError(err)
		s.Equal(noon, got)
	}
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Hits.WithLabelValues("wallclock")))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.Misses.WithLabelValues("wallclock")))
}

func (s *CacheSuite) TestEviction() {
	s.db.EXPECT().Canonical(gomock.Any()).DoAndReturn(func(id string) (string, error) {
		return id, nil
	}).Times(4)

	for _, id := range []string{"A", "B", "C", "A"} {
		_, err := s.cache.Canonical(id)
		s.Require().NoError(err)
	}
	s.Equal(2, s.cache.Len())

	s.cache.Purge()
	s.Equal(0, s.cache.Len())
}

func (s *CacheSuite) TestWarm() {
	s.db.EXPECT().Canonical("A").Return("A", nil)
	s.db.EXPECT().Canonical("B").Return("B", nil)

	s.Require().NoError(s.cache.Warm(context.Background(), []string{"A", "B"}))
	s.Equal(2, s.cache.Len())

	_, err := s.cache.Canonical("A")
	s.Require().NoError(err)
}

func (s *CacheSuite) TestWarm_StopsOnUnknownZone() {
	s.db.EXPECT().Canonical("Nowhere").Return("", stderrors.New("unknown"))

	s.Error(s.cache.Warm(context.Background(), []string{"Nowhere"}))
}

func (s *CacheSuite) TestNewCache_RequiresDatabase() {
	_, err := tzdb.NewCache(nil, 0)
	s.Error(err)
}
