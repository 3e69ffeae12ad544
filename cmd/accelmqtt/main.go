// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// accelmqtt publishes readings from the simulated accelerometer to an
// MQTT broker as JSON, one message per sample.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/henrydang80/accelsim/internal/feed"
)

func main() {
	broker := flag.String("broker", "tcp://localhost:1883", "MQTT broker URL")
	topic := flag.String("topic", "accel/sample", "MQTT topic to publish to")
	clientID := flag.String("client-id", "accelsim-producer", "MQTT client ID")
	interval := flag.Duration("interval", 100*time.Millisecond, "sampling interval")
	flag.Parse()

	f, err := feed.New(nil)
	if err != nil {
		log.Fatalf("failed to start the simulated chip: %v", err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(*broker).
		SetClientID(*clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
	}
	defer client.Disconnect(250)
	log.Printf("connected to MQTT broker at %s, publishing to %s", *broker, *topic)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for range ticker.C {
		r, err := f.Next()
		if err != nil {
			log.Printf("sample error: %v", err)
			continue
		}
		payload, err := json.Marshal(r)
		if err != nil {
			log.Printf("json marshal error: %v", err)
			continue
		}
		if token := client.Publish(*topic, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("MQTT publish error: %v", token.Error())
		}
	}
}
