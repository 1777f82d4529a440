package grading

import (
	"better_results_backend/internal/model"
)

func record(period, date, name, desc string, courses ...string) model.EvaluationRecord {
	rec := model.EvaluationRecord{
		Type:    model.EvaluationTypeNormal,
		Date:    date,
		Name:    name,
		Period:  &model.Period{Name: period},
		Courses: []model.Course{},
		Graphic: model.Graphic{Description: desc, Color: "green"},
	}
	for _, c := range courses {
		rec.Courses = append(rec.Courses, model.Course{Name: c, Graphic: &model.Icon{Type: "icon", Value: c + "-icon"}})
	}
	return rec
}

func eval(date, name, desc string) model.Evaluation {
	return model.Evaluation{Date: date, Name: name, Graphic: model.Graphic{Description: desc, Color: "olive"}}
}

// sampleRecords 接口按最新学期在前的顺序返回
func sampleRecords() []model.EvaluationRecord {
	return []model.EvaluationRecord{
		record("Trimester 2", "2024-12-10", "Kerstexamen", "14/20", "Wiskunde"),
		record("Trimester 2", "2024-12-03", "Toets breuken", "8/10", "Wiskunde"),
		record("Trimester 2", "2024-12-05", "Dictee", "6/10", "Nederlands"),
		record("Trimester 1", "2024-10-01", "Toets 1", "9/10", "Wiskunde"),
		record("Trimester 1", "2024-10-08", "Spreekbeurt", "A", "Nederlands"),
		record("Trimester 1", "2024-10-15", "Leesbegrip", "1/2", "Nederlands"),
		{Type: "feedback", Date: "2024-10-02", Name: "Opmerking", Period: &model.Period{Name: "Trimester 0"}},
	}
}
