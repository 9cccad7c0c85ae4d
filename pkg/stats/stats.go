//
//  Copyright 2023 PayPal Inc.
//
//  Licensed to the Apache Software Foundation (ASF) under one or more
//  contributor license agreements.  See the NOTICE file distributed with
//  this work for additional information regarding copyright ownership.
//  The ASF licenses this file to You under the Apache License, Version 2.0
//  (the "License"); you may not use this file except in compliance with
//  the License.  You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

// Package stats exports decode metrics over OTLP/HTTP. Recording is a no-op
// until InitMetricProvider succeeds.
package stats

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.opentelemetry.io/otel/metric/instrument/syncint64"
	"go.opentelemetry.io/otel/metric/unit"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregation"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const (
	MeterName     = "ofwire-meter"
	MetricPrefix  = "ofwire."
	StatusSuccess = "ok"
)

var (
	mtx           sync.Mutex
	meterProvider *metric.MeterProvider

	decodeCounterOnce  sync.Once
	unknownCounterOnce sync.Once
	sizeHistogramOnce  sync.Once

	decodeCounter  syncint64.Counter
	unknownCounter syncint64.Counter
	sizeHistogram  syncint64.Histogram
)

func Initialize(c *Config) (err error) {
	c.Validate()
	c.Dump()
	if !c.Enabled {
		return
	}
	return InitMetricProvider(c)
}

func InitMetricProvider(c *Config) error {
	mtx.Lock()
	defer mtx.Unlock()
	if meterProvider != nil {
		glog.Info("meter provider already initialized")
		return nil
	}
	ctx := context.Background()

	sizeView := metric.NewView(
		metric.Instrument{
			Name:  MetricPrefix + "message_size",
			Scope: instrumentation.Scope{Name: MeterName},
		},
		metric.Stream{
			Aggregation: aggregation.ExplicitBucketHistogram{
				Boundaries: c.SizeBuckets,
			},
		})

	provider, err := NewMeterProvider(ctx, c, sizeView)
	if err != nil {
		glog.Errorf("failed to create meter provider: %s", err)
		return err
	}
	meterProvider = provider
	global.SetMeterProvider(provider)
	return nil
}

func NewMeterProvider(ctx context.Context, c *Config, views ...metric.View) (*metric.MeterProvider, error) {
	exp, err := newHTTPExporter(ctx, c)
	if err != nil {
		return nil, err
	}
	reader := metric.NewPeriodicReader(exp, metric.WithInterval(time.Duration(c.Resolution)*time.Second))
	return metric.NewMeterProvider(
		metric.WithResource(resourceInfo(c.Poolname)),
		metric.WithReader(reader),
		metric.WithView(views...),
	), nil
}

func newHTTPExporter(ctx context.Context, c *Config) (metric.Exporter, error) {
	deltaTemporalitySelector := func(metric.InstrumentKind) metricdata.Temporality { return metricdata.DeltaTemporality }
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(fmt.Sprintf("%s:%d", c.Host, c.Port)),
		otlpmetrichttp.WithTimeout(7 * time.Second),
		otlpmetrichttp.WithCompression(otlpmetrichttp.NoCompression),
		otlpmetrichttp.WithTemporalitySelector(deltaTemporalitySelector),
		otlpmetrichttp.WithRetry(otlpmetrichttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 1 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  240 * time.Second,
		}),
	}
	if !c.UseTls {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	return otlpmetrichttp.New(ctx, opts...)
}

func resourceInfo(appName string) *resource.Resource {
	hostname, _ := os.Hostname()
	return resource.NewWithAttributes("empty resource",
		semconv.HostNameKey.String(hostname),
		semconv.ServiceNameKey.String(appName),
		attribute.String("application", appName),
	)
}

func IsEnabled() bool {
	mtx.Lock()
	defer mtx.Unlock()
	return meterProvider != nil
}

// Shutdown flushes pending metrics and stops the exporter.
func Shutdown(ctx context.Context) error {
	mtx.Lock()
	defer mtx.Unlock()
	if meterProvider == nil {
		return nil
	}
	err := meterProvider.Shutdown(ctx)
	meterProvider = nil
	return err
}

func getDecodeCounter() syncint64.Counter {
	decodeCounterOnce.Do(func() {
		var err error
		decodeCounter, err = global.Meter(MeterName).SyncInt64().Counter(
			MetricPrefix+"decode",
			instrument.WithDescription("Messages decoded, by type and status"),
		)
		if err != nil {
			glog.Error(err)
		}
	})
	return decodeCounter
}

func getUnknownCounter() syncint64.Counter {
	unknownCounterOnce.Do(func() {
		var err error
		unknownCounter, err = global.Meter(MeterName).SyncInt64().Counter(
			MetricPrefix+"unknown",
			instrument.WithDescription("Discriminators that fell back to a generic type"),
		)
		if err != nil {
			glog.Error(err)
		}
	})
	return unknownCounter
}

func getSizeHistogram() syncint64.Histogram {
	sizeHistogramOnce.Do(func() {
		var err error
		sizeHistogram, err = global.Meter(MeterName).SyncInt64().Histogram(
			MetricPrefix+"message_size",
			instrument.WithDescription("Size of decoded messages"),
			instrument.WithUnit(unit.Bytes),
		)
		if err != nil {
			glog.Error(err)
		}
	})
	return sizeHistogram
}

func RecordDecode(msgType string, version string, status string, size int) {
	if !IsEnabled() {
		return
	}
	ctx := context.Background()
	attrs := []attribute.KeyValue{
		attribute.String("type", msgType),
		attribute.String("version", version),
		attribute.String("status", status),
	}
	if c := getDecodeCounter(); c != nil {
		c.Add(ctx, 1, attrs...)
	}
	if h := getSizeHistogram(); h != nil && size > 0 {
		h.Record(ctx, int64(size), attrs[:2]...)
	}
}

// RecordUnknown counts a classification that stopped at base because the
// next discriminator was not recognized.
func RecordUnknown(base string) {
	if !IsEnabled() {
		return
	}
	if c := getUnknownCounter(); c != nil {
		c.Add(context.Background(), 1, attribute.String("base", base))
	}
}
