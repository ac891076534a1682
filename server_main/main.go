// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"github.com/SoftbearStudios/quadtree/server"
	"github.com/SoftbearStudios/quadtree/server/cloud/fs"
	"github.com/SoftbearStudios/quadtree/server/world"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"
	"time"
)

const awsProfile = "quadtree"

func main() {
	var (
		port           int
		maxConnections int
		bodies         int
		maxDepth       int
		seed           int64
		size           float64
		bucket         string
		region         string
		snapshotDir    string
		snapshotPeriod time.Duration
		snapshotScale  float64
	)

	flag.IntVar(&port, "port", 8192, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")
	flag.IntVar(&bodies, "bodies", 500, "number of simulated bodies")
	flag.IntVar(&maxDepth, "max-depth", -1, "maximum depth of the quad tree (negative for default)")
	flag.Int64Var(&seed, "seed", 0, "seed of body placement (0 for time based)")
	flag.Float64Var(&size, "size", 1024, "width and height of the world")
	flag.StringVar(&bucket, "bucket", "", "S3 bucket to upload snapshots to")
	flag.StringVar(&region, "region", "us-east-1", "AWS region of bucket")
	flag.StringVar(&snapshotDir, "snapshot-dir", "", "directory to write snapshots to, if no bucket")
	flag.DurationVar(&snapshotPeriod, "snapshot-period", time.Minute, "time between snapshots")
	flag.Float64Var(&snapshotScale, "snapshot-scale", 1, "snapshot pixels per world unit")
	flag.Parse()

	if bodies < 0 {
		log.Fatal("invalid argument bodies: ", bodies)
	}
	if size <= 0 {
		log.Fatal("invalid argument size: ", size)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var filesystem fs.Filesystem
	if bucket != "" {
		s3, err := newS3Filesystem(region, bucket)
		if err != nil {
			// Snapshots are not required for server to function, just log an error
			log.Printf("S3 error: %v\n", err)
		} else {
			filesystem = s3
		}
	} else if snapshotDir != "" {
		filesystem = fs.Directory(snapshotDir)
	}

	hub := server.NewHub(server.HubOptions{
		Bodies:         bodies,
		MaxDepth:       maxDepth,
		Seed:           seed,
		Bounds:         world.AABBFrom(0, 0, float32(size), float32(size)),
		Filesystem:     filesystem,
		SnapshotPeriod: snapshotPeriod,
		SnapshotScale:  float32(snapshotScale),
	})

	go hub.Run()

	if port < 0 {
		log.Println("quadtree simulation started")
		// Block forever
		<-make(chan struct{})
	}

	log.Printf("quadtree server started on :%d\n", port)

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/ws", hub.ServeSocket)
	http.Handle("/metrics", promhttp.Handler())

	l, err := net.Listen("tcp", fmt.Sprint(":", port))

	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Fatal("ListenAndServe: ", http.Serve(l, nil))
}

func newS3Filesystem(region, bucket string) (fs.Filesystem, error) {
	sess, err := fs.NewSession(region, awsProfile)
	if err != nil {
		return nil, err
	}
	return fs.NewS3Filesystem(sess, bucket)
}
