package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/types"
)

// This file is the pure half of the aggregation engine: every function
// reshapes rows that are already in memory into response-ready nested
// structures. No store access and no clock reads happen here.

// percentOf is the single zero-guarded percentage used for chapter progress
// and tracker points. An empty denominator yields 0, never NaN.
func percentOf(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(done) / float64(total)
}

// dayKey buckets an instant into its UTC calendar day.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func weekdayName(t time.Time) string {
	return strings.ToLower(t.UTC().Weekday().String())
}

func projectSubjectRef(s *types.Subject) types.SubjectRef {
	if s == nil {
		return types.SubjectRef{}
	}
	return types.SubjectRef{ID: s.ID, Name: s.Name, Standard: s.Standard}
}

func projectChapterSummary(ch *types.Chapter) types.ChapterSummary {
	return types.ChapterSummary{
		ID:             ch.ID,
		Name:           ch.Name,
		SeqNumber:      ch.SeqNumber,
		Done:           ch.Done,
		SelectionDiary: ch.SelectionDiary,
		OnePager:       ch.OnePager,
		DPP:            ch.DPP,
		Module:         ch.Module,
		PYQ:            ch.PYQ,
		ExtraMaterial:  ch.ExtraMaterial,
	}
}

// projectChaptersWithSubject flattens each chapter with its owning subject.
// Row order is preserved, so the caller controls the sort.
func projectChaptersWithSubject(chapters []*types.Chapter, subjects []*types.Subject) []types.ChapterWithSubject {
	refs := make(map[uuid.UUID]types.SubjectRef, len(subjects))
	for _, s := range subjects {
		refs[s.ID] = projectSubjectRef(s)
	}
	out := make([]types.ChapterWithSubject, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, types.ChapterWithSubject{
			ID:             ch.ID,
			Name:           ch.Name,
			Subject:        refs[ch.SubjectID],
			SeqNumber:      ch.SeqNumber,
			Done:           ch.Done,
			SelectionDiary: ch.SelectionDiary,
			OnePager:       ch.OnePager,
			DPP:            ch.DPP,
			Module:         ch.Module,
			PYQ:            ch.PYQ,
			ExtraMaterial:  ch.ExtraMaterial,
		})
	}
	return out
}

// projectSubjectsWithChapters groups chapters under their subject. Chapter
// order within a subject follows the input order; a subject with no
// chapters gets an empty list, not null.
func projectSubjectsWithChapters(subjects []*types.Subject, chapters []*types.Chapter) []types.SubjectWithChapters {
	bySubject := make(map[uuid.UUID][]types.ChapterSummary, len(subjects))
	for _, ch := range chapters {
		bySubject[ch.SubjectID] = append(bySubject[ch.SubjectID], projectChapterSummary(ch))
	}
	out := make([]types.SubjectWithChapters, 0, len(subjects))
	for _, s := range subjects {
		list := bySubject[s.ID]
		if list == nil {
			list = []types.ChapterSummary{}
		}
		out = append(out, types.SubjectWithChapters{
			ID:          s.ID,
			Name:        s.Name,
			Standard:    s.Standard,
			ChapterList: list,
		})
	}
	return out
}

// projectNestedCatalog builds the full subject → chapter → topic nesting.
// Empty levels come back as empty slices.
func projectNestedCatalog(subjects []*types.Subject, chapters []*types.Chapter, topics []*types.Topic) []types.CatalogSubject {
	topicsByChapter := make(map[uuid.UUID][]types.CatalogTopic)
	for _, tp := range topics {
		topicsByChapter[tp.ChapterID] = append(topicsByChapter[tp.ChapterID], types.CatalogTopic{
			ID:        tp.ID,
			Name:      tp.Name,
			SeqNumber: tp.SeqNumber,
			Done:      tp.Done,
			Boards:    tp.Boards,
			Mains:     tp.Mains,
			Advanced:  tp.Advanced,
		})
	}
	chaptersBySubject := make(map[uuid.UUID][]types.CatalogChapter)
	for _, ch := range chapters {
		topicList := topicsByChapter[ch.ID]
		if topicList == nil {
			topicList = []types.CatalogTopic{}
		}
		chaptersBySubject[ch.SubjectID] = append(chaptersBySubject[ch.SubjectID], types.CatalogChapter{
			ID:             ch.ID,
			Name:           ch.Name,
			SeqNumber:      ch.SeqNumber,
			Done:           ch.Done,
			SelectionDiary: ch.SelectionDiary,
			OnePager:       ch.OnePager,
			DPP:            ch.DPP,
			Module:         ch.Module,
			PYQ:            ch.PYQ,
			ExtraMaterial:  ch.ExtraMaterial,
			Topics:         topicList,
		})
	}
	out := make([]types.CatalogSubject, 0, len(subjects))
	for _, s := range subjects {
		chapterList := chaptersBySubject[s.ID]
		if chapterList == nil {
			chapterList = []types.CatalogChapter{}
		}
		out = append(out, types.CatalogSubject{
			ID:       s.ID,
			Name:     s.Name,
			Standard: s.Standard,
			Chapters: chapterList,
		})
	}
	return out
}

func projectChapterProgress(chapterID uuid.UUID, total, done int) types.ChapterProgress {
	return types.ChapterProgress{
		ChapterID:            chapterID,
		TotalTopics:          total,
		TotalCompletedTopics: done,
		PercentCompleted:     percentOf(done, total),
	}
}

func projectTrackerEntries(trackers []*types.TaskTracker, tasksByID map[uuid.UUID]*types.Task) []types.TrackerEntry {
	out := make([]types.TrackerEntry, 0, len(trackers))
	for _, tr := range trackers {
		out = append(out, types.TrackerEntry{
			TrackerID: tr.ID,
			Date:      tr.Date,
			Status:    tr.Status,
			Task:      tasksByID[tr.TaskID],
		})
	}
	return out
}

// projectCurrentSummary rolls the current bucket up into a single summary.
// A tracker whose task row is missing counts as assigned but never done.
func projectCurrentSummary(trackers []*types.TaskTracker, tasksByID map[uuid.UUID]*types.Task, streak int) types.CurrentTrackerSummary {
	done := 0
	for _, tr := range trackers {
		if t := tasksByID[tr.TaskID]; t != nil && t.Done {
			done++
		}
	}
	return types.CurrentTrackerSummary{
		Status:            types.TrackerStatusCurrent,
		TotalTaskAssigned: len(trackers),
		TotalTaskDone:     done,
		Points:            percentOf(done, len(trackers)),
		Streak:            streak,
		Tasks:             projectTrackerEntries(trackers, tasksByID),
	}
}

// projectDaySummaries groups tracker rows into UTC calendar-day buckets,
// sorted day ascending.
func projectDaySummaries(trackers []*types.TaskTracker, tasksByID map[uuid.UUID]*types.Task) []types.DayTrackerSummary {
	type bucket struct {
		assigned int
		done     int
	}
	buckets := make(map[string]*bucket)
	for _, tr := range trackers {
		key := dayKey(tr.Date)
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.assigned++
		if t := tasksByID[tr.TaskID]; t != nil && t.Done {
			b.done++
		}
	}
	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)
	out := make([]types.DayTrackerSummary, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		out = append(out, types.DayTrackerSummary{
			Day:               day,
			TotalTaskAssigned: b.assigned,
			TotalTaskDone:     b.done,
			Points:            percentOf(b.done, b.assigned),
		})
	}
	return out
}

// doneCountByDay counts completed tasks per UTC day across the given
// tracker rows. Feeds the streak computation.
func doneCountByDay(trackers []*types.TaskTracker, tasksByID map[uuid.UUID]*types.Task) map[string]int {
	out := make(map[string]int)
	for _, tr := range trackers {
		if t := tasksByID[tr.TaskID]; t != nil && t.Done {
			out[dayKey(tr.Date)]++
		}
	}
	return out
}

// computeStreak counts consecutive UTC days with at least one completed
// task, walking back from today. A day with nothing done yet does not
// break a streak that ended yesterday.
func computeStreak(doneByDay map[string]int, now time.Time) int {
	day := now.UTC().Truncate(24 * time.Hour)
	if doneByDay[dayKey(day)] == 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for doneByDay[dayKey(day)] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
