package docstore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// pipeline builds aggregation pipelines from typed stages so every report
// has a fixed shape instead of hand assembled stage documents.
type pipeline struct {
	stages mongo.Pipeline
}

func newPipeline() *pipeline {
	return &pipeline{}
}

func (p *pipeline) stage(name string, v any) *pipeline {
	p.stages = append(p.stages, bson.D{{Key: name, Value: v}})
	return p
}

func (p *pipeline) match(filter bson.D) *pipeline {
	return p.stage("$match", filter)
}

// groupCount groups documents by id and counts each group into "cnt".
func (p *pipeline) groupCount(id any) *pipeline {
	return p.stage("$group", bson.D{
		{Key: "_id", Value: id},
		{Key: "cnt", Value: bson.D{{Key: "$sum", Value: 1}}},
	})
}

func (p *pipeline) sortAsc(keys ...string) *pipeline {
	sort := make(bson.D, 0, len(keys))
	for _, k := range keys {
		sort = append(sort, bson.E{Key: k, Value: 1})
	}
	return p.stage("$sort", sort)
}

func (p *pipeline) build() mongo.Pipeline {
	return p.stages
}

func fieldRef(name string) string {
	return "$" + name
}

// monthOf is the {y, m} group key of a date field. $year and $month evaluate in UTC.
func monthOf(name string) bson.D {
	return bson.D{
		{Key: "y", Value: bson.D{{Key: "$year", Value: fieldRef(name)}}},
		{Key: "m", Value: bson.D{{Key: "$month", Value: fieldRef(name)}}},
	}
}
